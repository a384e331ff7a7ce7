package entity

import (
	"time"

	"github.com/google/uuid"
)

// MaxAttachmentSize caps a single upload at 10 MiB.
const MaxAttachmentSize = 10 * 1024 * 1024

type Attachment struct {
	Id           uuid.UUID
	Filename     string
	OriginalName string
	Mimetype     string
	Size         int64
	Path         string
	NoteId       uuid.UUID
	UserId       uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
