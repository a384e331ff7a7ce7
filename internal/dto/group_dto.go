package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateGroupRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	IsPrivate   bool   `json:"is_private"`
}

type UpdateGroupRequest struct {
	Id          uuid.UUID `json:"-"`
	Name        *string   `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string   `json:"description"`
	IsPrivate   *bool     `json:"is_private"`
}

type AddMemberRequest struct {
	UserId uuid.UUID `json:"user_id" validate:"required"`
}

type ShareNoteRequest struct {
	NoteId uuid.UUID `json:"note_id" validate:"required"`
}

type MemberResponse struct {
	UserId   uuid.UUID `json:"user_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

type GroupResponse struct {
	Id          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsPrivate   bool      `json:"is_private"`
	OwnerId     uuid.UUID `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type GroupListResponse struct {
	Owned  []GroupResponse `json:"owned"`
	Member []GroupResponse `json:"member"`
}

type GroupDetailResponse struct {
	GroupResponse
	Members     []MemberResponse `json:"members"`
	SharedNotes []NoteResponse   `json:"shared_notes"`
}
