package contract

import (
	"context"

	"studynotes-be/internal/entity"
	"studynotes-be/internal/repository/specification"

	"github.com/google/uuid"
)

type GroupRepository interface {
	Create(ctx context.Context, group *entity.Group) error
	Update(ctx context.Context, group *entity.Group) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Group, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Group, error)

	// FindAllByMember returns the groups the user is enrolled in
	// (including groups they own, since owners hold an admin row).
	FindAllByMember(ctx context.Context, userId uuid.UUID) ([]*entity.Group, error)

	AddMember(ctx context.Context, member *entity.GroupMember) error
	RemoveMember(ctx context.Context, groupId, userId uuid.UUID) error
	FindMembers(ctx context.Context, groupId uuid.UUID) ([]*entity.GroupMember, error)
	FindMembership(ctx context.Context, groupId, userId uuid.UUID) (*entity.GroupMember, error)

	ShareNote(ctx context.Context, share *entity.GroupNote) error
	UnshareNote(ctx context.Context, groupId, noteId uuid.UUID) error
	FindSharedNoteIds(ctx context.Context, groupId uuid.UUID) ([]uuid.UUID, error)

	// IsNoteSharedWithUser reports whether the note reaches the user
	// through any group the user is a member of.
	IsNoteSharedWithUser(ctx context.Context, noteId, userId uuid.UUID) (bool, error)
}
