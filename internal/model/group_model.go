package model

import (
	"time"

	"github.com/google/uuid"
)

type Group struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	IsPrivate   bool      `gorm:"not null;default:false"`
	OwnerId     uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Group) TableName() string {
	return "groups"
}

type GroupMember struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GroupId   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_group_members_group_user"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_group_members_group_user"`
	Role      string    `gorm:"type:varchar(20);not null;default:'member'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (GroupMember) TableName() string {
	return "group_members"
}

type GroupNote struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GroupId   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_group_notes_group_note"`
	NoteId    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_group_notes_group_note"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (GroupNote) TableName() string {
	return "group_notes"
}
