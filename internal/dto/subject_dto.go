package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSubjectRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	Color       string `json:"color" validate:"omitempty,hexcolor6"`
}

type UpdateSubjectRequest struct {
	Id          uuid.UUID `json:"-"`
	Name        *string   `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string   `json:"description"`
	Color       *string   `json:"color" validate:"omitempty,hexcolor6"`
}

type SubjectResponse struct {
	Id          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	NotesCount  int64     `json:"notes_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SubjectDetailResponse struct {
	SubjectResponse
	Notes []NoteResponse `json:"notes"`
}
