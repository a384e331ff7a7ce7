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

type ISubjectService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.SubjectResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.SubjectDetailResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateSubjectRequest) (*dto.SubjectResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type subjectService struct {
	uowFactory  unitofwork.RepositoryFactory
	noteService INoteService
}

func NewSubjectService(uowFactory unitofwork.RepositoryFactory, noteService INoteService) ISubjectService {
	return &subjectService{
		uowFactory:  uowFactory,
		noteService: noteService,
	}
}

func (s *subjectService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error) {
	color := req.Color
	if color == "" {
		color = entity.DefaultSubjectColor
	}

	subject := &entity.Subject{
		Id:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Color:       color,
		UserId:      userId,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SubjectRepository().Create(ctx, subject); err != nil {
		return nil, err
	}

	return subjectResponse(subject, 0), nil
}

func (s *subjectService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.SubjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	subjects, err := uow.SubjectRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "name", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	counts, err := uow.SubjectRepository().NotesCountByOwner(ctx, userId)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.SubjectResponse, 0, len(subjects))
	for _, subject := range subjects {
		res = append(res, subjectResponse(subject, counts[subject.Id]))
	}
	return res, nil
}

func (s *subjectService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.SubjectDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	subject, err := uow.SubjectRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, apperror.NotFound("subject")
	}

	subjectId := subject.Id
	notes, err := s.noteService.GetAll(ctx, userId, &dto.ListNotesRequest{SubjectId: &subjectId})
	if err != nil {
		return nil, err
	}

	noteValues := make([]dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		noteValues = append(noteValues, *n)
	}

	return &dto.SubjectDetailResponse{
		SubjectResponse: *subjectResponse(subject, int64(len(notes))),
		Notes:           noteValues,
	}, nil
}

func (s *subjectService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateSubjectRequest) (*dto.SubjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	subject, err := uow.SubjectRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, apperror.NotFound("subject")
	}

	if req.Name != nil {
		subject.Name = *req.Name
	}
	if req.Description != nil {
		subject.Description = *req.Description
	}
	if req.Color != nil {
		subject.Color = *req.Color
	}
	subject.UpdatedAt = time.Now()

	if err := uow.SubjectRepository().Update(ctx, subject); err != nil {
		return nil, err
	}

	counts, err := uow.SubjectRepository().NotesCountByOwner(ctx, userId)
	if err != nil {
		return nil, err
	}

	return subjectResponse(subject, counts[subject.Id]), nil
}

// Delete removes the subject; notes referencing it survive with their
// subject detached (the foreign key nulls the column).
func (s *subjectService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	subject, err := uow.SubjectRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if subject == nil {
		return apperror.NotFound("subject")
	}

	return uow.SubjectRepository().Delete(ctx, id)
}

func subjectResponse(subject *entity.Subject, notesCount int64) *dto.SubjectResponse {
	return &dto.SubjectResponse{
		Id:          subject.Id,
		Name:        subject.Name,
		Description: subject.Description,
		Color:       subject.Color,
		NotesCount:  notesCount,
		CreatedAt:   subject.CreatedAt,
		UpdatedAt:   subject.UpdatedAt,
	}
}
