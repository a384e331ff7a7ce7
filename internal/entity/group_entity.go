package entity

import (
	"time"

	"github.com/google/uuid"
)

type GroupRole string

const (
	GroupRoleMember GroupRole = "member"
	GroupRoleAdmin  GroupRole = "admin"
)

type Group struct {
	Id          uuid.UUID
	Name        string
	Description string
	IsPrivate   bool
	OwnerId     uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type GroupMember struct {
	Id        uuid.UUID
	GroupId   uuid.UUID
	UserId    uuid.UUID
	Role      GroupRole
	CreatedAt time.Time
	UpdatedAt time.Time
}

type GroupNote struct {
	Id        uuid.UUID
	GroupId   uuid.UUID
	NoteId    uuid.UUID
	CreatedAt time.Time
}
