package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"studynotes-be/internal/dto"
	"studynotes-be/internal/entity"
	"studynotes-be/internal/pkg/apperror"
	"studynotes-be/internal/repository/specification"
	"studynotes-be/internal/repository/unitofwork"
)

type ITagService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateTagRequest) (*dto.TagResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.TagResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type tagService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewTagService(uowFactory unitofwork.RepositoryFactory) ITagService {
	return &tagService{uowFactory: uowFactory}
}

func (s *tagService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateTagRequest) (*dto.TagResponse, error) {
	tag := &entity.Tag{
		Id:        uuid.New(),
		Name:      req.Name,
		UserId:    userId,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.TagRepository().Create(ctx, tag); err != nil {
		return nil, err
	}

	return tagResponse(tag, 0), nil
}

func (s *tagService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.TagResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tags, err := uow.TagRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "name", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	counts, err := uow.TagRepository().NotesCountByOwner(ctx, userId)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.TagResponse, 0, len(tags))
	for _, tag := range tags {
		res = append(res, tagResponse(tag, counts[tag.Id]))
	}
	return res, nil
}

// Delete removes the tag; its note links go with it, the notes stay.
func (s *tagService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tag, err := uow.TagRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if tag == nil {
		return apperror.NotFound("tag")
	}

	return uow.TagRepository().Delete(ctx, id)
}

func tagResponse(tag *entity.Tag, notesCount int64) *dto.TagResponse {
	return &dto.TagResponse{
		Id:         tag.Id,
		Name:       tag.Name,
		NotesCount: notesCount,
		CreatedAt:  tag.CreatedAt,
	}
}
