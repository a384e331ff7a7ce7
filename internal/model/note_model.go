package model

import (
	"time"

	"github.com/google/uuid"
)

// Note.SubjectId is a soft reference: deleting the subject nulls it
// (FK SET NULL, see cmd/migrate), deleting the owner removes the note.
type Note struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title     string     `gorm:"type:varchar(200);not null"`
	Content   string     `gorm:"type:text"`
	IsPublic  bool       `gorm:"not null;default:false"`
	UserId    uuid.UUID  `gorm:"type:uuid;not null;index"`
	SubjectId *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime;index"`
}

func (Note) TableName() string {
	return "notes"
}

type NoteTag struct {
	NoteId uuid.UUID `gorm:"type:uuid;primaryKey"`
	TagId  uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (NoteTag) TableName() string {
	return "note_tags"
}
