package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultSubjectColor is applied when a subject is created without an
// explicit color.
const DefaultSubjectColor = "#3B82F6"

type Subject struct {
	Id          uuid.UUID
	Name        string
	Description string
	Color       string
	UserId      uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
