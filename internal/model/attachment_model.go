package model

import (
	"time"

	"github.com/google/uuid"
)

// Filename is the generated on-disk name; OriginalName is what the
// uploader called it and is never used for the stored path.
type Attachment struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Filename     string    `gorm:"type:varchar(255);not null"`
	OriginalName string    `gorm:"type:varchar(255);not null"`
	Mimetype     string    `gorm:"type:varchar(100);not null"`
	Size         int64     `gorm:"not null"`
	Path         string    `gorm:"type:text;not null"`
	NoteId       uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId       uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Attachment) TableName() string {
	return "attachments"
}
