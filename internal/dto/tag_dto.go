package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTagRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

type TagResponse struct {
	Id         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	NotesCount int64     `json:"notes_count"`
	CreatedAt  time.Time `json:"created_at"`
}

type TagRef struct {
	Id   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
