package contract

import (
	"context"

	"studynotes-be/internal/entity"
	"studynotes-be/internal/repository/specification"

	"github.com/google/uuid"
)

type TagRepository interface {
	Create(ctx context.Context, tag *entity.Tag) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Tag, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Tag, error)

	// FindAllForNotes resolves the tags attached to each of the given
	// notes in one query.
	FindAllForNotes(ctx context.Context, noteIds []uuid.UUID) (map[uuid.UUID][]*entity.Tag, error)

	// NotesCountByOwner returns a live per-tag note count for all of
	// the owner's tags.
	NotesCountByOwner(ctx context.Context, userId uuid.UUID) (map[uuid.UUID]int64, error)
}
