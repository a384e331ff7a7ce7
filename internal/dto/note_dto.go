package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Title     string      `json:"title" validate:"required,max=200"`
	Content   string      `json:"content"`
	IsPublic  bool        `json:"is_public"`
	SubjectId *uuid.UUID  `json:"subject_id"`
	TagIds    []uuid.UUID `json:"tag_ids"`
}

// UpdateNoteRequest is a partial update: nil fields are left untouched.
// A SubjectId equal to uuid.Nil detaches the note from its subject, and a
// non-nil TagIds replaces the tag set even when the slice is empty.
type UpdateNoteRequest struct {
	Id        uuid.UUID    `json:"-"`
	Title     *string      `json:"title" validate:"omitempty,min=1,max=200"`
	Content   *string      `json:"content"`
	IsPublic  *bool        `json:"is_public"`
	SubjectId *uuid.UUID   `json:"subject_id"`
	TagIds    *[]uuid.UUID `json:"tag_ids"`
}

type ListNotesRequest struct {
	SubjectId *uuid.UUID
	TagId     *uuid.UUID
	IsPublic  *bool
	Search    string
	Page      int
	Limit     int
}

type SubjectRef struct {
	Id    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
}

type AttachmentSummary struct {
	Id           uuid.UUID `json:"id"`
	OriginalName string    `json:"original_name"`
	Mimetype     string    `json:"mimetype"`
	Size         int64     `json:"size"`
}

type NoteResponse struct {
	Id          uuid.UUID           `json:"id"`
	Title       string              `json:"title"`
	Content     string              `json:"content"`
	IsPublic    bool                `json:"is_public"`
	UserId      uuid.UUID           `json:"user_id"`
	Subject     *SubjectRef         `json:"subject,omitempty"`
	Tags        []TagRef            `json:"tags"`
	Attachments []AttachmentSummary `json:"attachments"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}
