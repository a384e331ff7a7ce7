package unitofwork

import (
	"context"

	"studynotes-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	SubjectRepository() contract.SubjectRepository
	TagRepository() contract.TagRepository
	NoteRepository() contract.NoteRepository
	GroupRepository() contract.GroupRepository
	AttachmentRepository() contract.AttachmentRepository
}
