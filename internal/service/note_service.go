package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"studynotes-be/internal/access"
	"studynotes-be/internal/dto"
	"studynotes-be/internal/entity"
	"studynotes-be/internal/pkg/apperror"
	"studynotes-be/internal/pkg/logger"
	"studynotes-be/internal/repository/specification"
	"studynotes-be/internal/repository/unitofwork"
	"studynotes-be/pkg/storage"
)

type INoteService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID, req *dto.ListNotesRequest) ([]*dto.NoteResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)

	// GetByIds resolves already-authorized note ids into full responses.
	// Callers are responsible for access checks.
	GetByIds(ctx context.Context, noteIds []uuid.UUID) ([]*dto.NoteResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type noteService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	fileStore        storage.FileStore
	accessVerifier   *access.Verifier
	logger           logger.ILogger
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	fileStore storage.FileStore,
	logger logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		fileStore:        fileStore,
		accessVerifier:   access.NewVerifier(),
		logger:           logger,
	}
}

func (s *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if req.SubjectId != nil {
		subject, err := uow.SubjectRepository().FindOne(ctx,
			specification.ByID{ID: *req.SubjectId},
			specification.OwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		if subject == nil {
			return nil, apperror.NotFound("subject")
		}
	}

	tagIds, err := s.ownedTagIds(ctx, uow, userId, req.TagIds)
	if err != nil {
		return nil, err
	}

	note := &entity.Note{
		Id:        uuid.New(),
		Title:     req.Title,
		Content:   req.Content,
		IsPublic:  req.IsPublic,
		UserId:    userId,
		SubjectId: req.SubjectId,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.NoteRepository().Create(ctx, note); err != nil {
		return nil, err
	}
	if len(tagIds) > 0 {
		if err := uow.NoteRepository().SetTags(ctx, note.Id, tagIds); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publisherService.PublishAudit(ctx, "NOTE_CREATED", map[string]any{
		"note_id": note.Id,
		"user_id": userId,
		"title":   note.Title,
	})

	return s.enrichOne(ctx, note)
}

func (s *noteService) GetAll(ctx context.Context, userId uuid.UUID, req *dto.ListNotesRequest) ([]*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	}
	if req.SubjectId != nil {
		specs = append(specs, specification.BySubjectID{SubjectID: *req.SubjectId})
	}
	if req.TagId != nil {
		specs = append(specs, specification.HasTag{TagID: *req.TagId})
	}
	if req.IsPublic != nil {
		specs = append(specs, specification.ByPublic{IsPublic: *req.IsPublic})
	}
	if req.Search != "" {
		specs = append(specs, specification.TitleOrContentLike{Search: req.Search})
	}
	if req.Limit > 0 {
		page := req.Page
		if page < 1 {
			page = 1
		}
		specs = append(specs, specification.Pagination{Limit: req.Limit, Offset: (page - 1) * req.Limit})
	}

	notes, err := uow.NoteRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	return s.enrich(ctx, uow, notes)
}

func (s *noteService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NotFound("note")
	}

	sharedWithUser := false
	if note.UserId != userId {
		sharedWithUser, err = uow.GroupRepository().IsNoteSharedWithUser(ctx, note.Id, userId)
		if err != nil {
			return nil, err
		}
	}

	// An inaccessible note is indistinguishable from a missing one, so
	// the id space is never probeable.
	if !s.accessVerifier.CanReadNote(userId, note, sharedWithUser) {
		return nil, apperror.NotFound("note")
	}

	return s.enrichOne(ctx, note)
}

func (s *noteService) GetByIds(ctx context.Context, noteIds []uuid.UUID) ([]*dto.NoteResponse, error) {
	if len(noteIds) == 0 {
		return []*dto.NoteResponse{}, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.ByIDs{IDs: noteIds},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	return s.enrich(ctx, uow, notes)
}

func (s *noteService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NotFound("note")
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.IsPublic != nil {
		note.IsPublic = *req.IsPublic
	}
	if req.SubjectId != nil {
		if *req.SubjectId == uuid.Nil {
			note.SubjectId = nil
		} else {
			subject, err := uow.SubjectRepository().FindOne(ctx,
				specification.ByID{ID: *req.SubjectId},
				specification.OwnedBy{UserID: userId},
			)
			if err != nil {
				return nil, err
			}
			if subject == nil {
				return nil, apperror.NotFound("subject")
			}
			subjectId := *req.SubjectId
			note.SubjectId = &subjectId
		}
	}
	note.UpdatedAt = time.Now()

	var tagIds []uuid.UUID
	if req.TagIds != nil {
		tagIds, err = s.ownedTagIds(ctx, uow, userId, *req.TagIds)
		if err != nil {
			return nil, err
		}
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}
	if req.TagIds != nil {
		if err := uow.NoteRepository().SetTags(ctx, note.Id, tagIds); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return s.enrichOne(ctx, note)
}

// Delete removes the note row; tag links, group shares and attachment rows
// cascade with it. Attachment files are unlinked after the commit so a
// failed transaction never loses files.
func (s *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if note == nil {
		return apperror.NotFound("note")
	}

	attachments, err := uow.AttachmentRepository().FindAll(ctx, specification.ByNoteID{NoteID: id})
	if err != nil {
		return err
	}

	if err := uow.NoteRepository().Delete(ctx, id); err != nil {
		return err
	}

	for _, att := range attachments {
		if err := s.fileStore.Remove(att.Path); err != nil {
			s.logger.Warn("note", "orphaned attachment file left on disk", map[string]interface{}{
				"attachment_id": att.Id,
				"path":          att.Path,
				"error":         err.Error(),
			})
		}
	}

	s.publisherService.PublishAudit(ctx, "NOTE_DELETED", map[string]any{
		"note_id": id,
		"user_id": userId,
	})

	return nil
}

// ownedTagIds filters the requested tag ids down to tags the user owns.
// Unknown or foreign ids are dropped silently.
func (s *noteService) ownedTagIds(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, tagIds []uuid.UUID) ([]uuid.UUID, error) {
	if len(tagIds) == 0 {
		return nil, nil
	}

	tags, err := uow.TagRepository().FindAll(ctx,
		specification.ByIDs{IDs: tagIds},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}

	owned := make([]uuid.UUID, 0, len(tags))
	for _, tag := range tags {
		owned = append(owned, tag.Id)
	}
	return owned, nil
}

func (s *noteService) enrichOne(ctx context.Context, note *entity.Note) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	res, err := s.enrich(ctx, uow, []*entity.Note{note})
	if err != nil {
		return nil, err
	}
	return res[0], nil
}

// enrich resolves subjects, tags and attachments for a page of notes with
// one query per relation instead of one per note.
func (s *noteService) enrich(ctx context.Context, uow unitofwork.UnitOfWork, notes []*entity.Note) ([]*dto.NoteResponse, error) {
	if len(notes) == 0 {
		return []*dto.NoteResponse{}, nil
	}

	noteIds := make([]uuid.UUID, 0, len(notes))
	subjectIdSet := make(map[uuid.UUID]struct{})
	for _, note := range notes {
		noteIds = append(noteIds, note.Id)
		if note.SubjectId != nil {
			subjectIdSet[*note.SubjectId] = struct{}{}
		}
	}

	subjectsById := make(map[uuid.UUID]*entity.Subject, len(subjectIdSet))
	if len(subjectIdSet) > 0 {
		subjectIds := make([]uuid.UUID, 0, len(subjectIdSet))
		for id := range subjectIdSet {
			subjectIds = append(subjectIds, id)
		}
		subjects, err := uow.SubjectRepository().FindAll(ctx, specification.ByIDs{IDs: subjectIds})
		if err != nil {
			return nil, err
		}
		for _, subject := range subjects {
			subjectsById[subject.Id] = subject
		}
	}

	tagsByNote, err := uow.TagRepository().FindAllForNotes(ctx, noteIds)
	if err != nil {
		return nil, err
	}

	attachments, err := uow.AttachmentRepository().FindAll(ctx, specification.ByNoteIDs{NoteIDs: noteIds})
	if err != nil {
		return nil, err
	}
	attachmentsByNote := make(map[uuid.UUID][]*entity.Attachment)
	for _, att := range attachments {
		attachmentsByNote[att.NoteId] = append(attachmentsByNote[att.NoteId], att)
	}

	res := make([]*dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		item := &dto.NoteResponse{
			Id:          note.Id,
			Title:       note.Title,
			Content:     note.Content,
			IsPublic:    note.IsPublic,
			UserId:      note.UserId,
			Tags:        []dto.TagRef{},
			Attachments: []dto.AttachmentSummary{},
			CreatedAt:   note.CreatedAt,
			UpdatedAt:   note.UpdatedAt,
		}

		if note.SubjectId != nil {
			if subject, ok := subjectsById[*note.SubjectId]; ok {
				item.Subject = &dto.SubjectRef{
					Id:    subject.Id,
					Name:  subject.Name,
					Color: subject.Color,
				}
			}
		}

		for _, tag := range tagsByNote[note.Id] {
			item.Tags = append(item.Tags, dto.TagRef{Id: tag.Id, Name: tag.Name})
		}

		for _, att := range attachmentsByNote[note.Id] {
			item.Attachments = append(item.Attachments, dto.AttachmentSummary{
				Id:           att.Id,
				OriginalName: att.OriginalName,
				Mimetype:     att.Mimetype,
				Size:         att.Size,
			})
		}

		res = append(res, item)
	}

	return res, nil
}
