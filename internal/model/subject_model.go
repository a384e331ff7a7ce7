package model

import (
	"time"

	"github.com/google/uuid"
)

// Subject name is unique per owner, not globally.
type Subject struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_subjects_name_user"`
	Description string    `gorm:"type:text"`
	Color       string    `gorm:"type:varchar(7);not null;default:'#3B82F6'"`
	UserId      uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_subjects_name_user"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Subject) TableName() string {
	return "subjects"
}
