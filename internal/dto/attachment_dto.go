package dto

import (
	"time"

	"github.com/google/uuid"
)

type AttachmentResponse struct {
	Id           uuid.UUID `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	Mimetype     string    `json:"mimetype"`
	Size         int64     `json:"size"`
	NoteId       uuid.UUID `json:"note_id"`
	CreatedAt    time.Time `json:"created_at"`
}
