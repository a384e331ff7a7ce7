package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"studynotes-be/internal/dto"
	"studynotes-be/internal/entity"
	"studynotes-be/internal/pkg/apperror"
	"studynotes-be/internal/pkg/logger"
	"studynotes-be/internal/repository/specification"
	"studynotes-be/internal/repository/unitofwork"
	"studynotes-be/pkg/storage"
)

var allowedExtensions = map[string]struct{}{
	".jpeg": {}, ".jpg": {}, ".png": {}, ".gif": {},
	".pdf": {}, ".doc": {}, ".docx": {}, ".txt": {}, ".zip": {},
}

var allowedMimetypes = map[string]struct{}{
	"image/jpeg":      {},
	"image/png":       {},
	"image/gif":       {},
	"application/pdf": {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"text/plain":      {},
	"application/zip": {},
}

type UploadInput struct {
	NoteId       uuid.UUID
	OriginalName string
	Mimetype     string
	Size         int64
	Content      io.Reader
}

type IAttachmentService interface {
	Upload(ctx context.Context, userId uuid.UUID, in *UploadInput) (*dto.AttachmentResponse, error)
	Fetch(ctx context.Context, userId, id uuid.UUID) (*entity.Attachment, error)
	Remove(ctx context.Context, userId, id uuid.UUID) error
}

type attachmentService struct {
	uowFactory       unitofwork.RepositoryFactory
	fileStore        storage.FileStore
	publisherService IPublisherService
	logger           logger.ILogger
	maxSizeBytes     int64
}

func NewAttachmentService(
	uowFactory unitofwork.RepositoryFactory,
	fileStore storage.FileStore,
	publisherService IPublisherService,
	logger logger.ILogger,
	maxSizeBytes int64,
) IAttachmentService {
	if maxSizeBytes <= 0 {
		maxSizeBytes = entity.MaxAttachmentSize
	}
	return &attachmentService{
		uowFactory:       uowFactory,
		fileStore:        fileStore,
		publisherService: publisherService,
		logger:           logger,
		maxSizeBytes:     maxSizeBytes,
	}
}

// validateUpload enforces the size cap and the type allow-list. Extension
// and declared mimetype must both pass, so renaming a binary does not get
// it through.
func validateUpload(originalName, mimetype string, size, maxSize int64) error {
	if size <= 0 {
		return apperror.Validation("file is empty")
	}
	if size > maxSize {
		return apperror.Validation(fmt.Sprintf("file exceeds the %d MB limit", maxSize/(1024*1024)))
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := allowedExtensions[ext]; !ok {
		return apperror.Validation("file type is not allowed")
	}

	base, _, _ := strings.Cut(strings.ToLower(mimetype), ";")
	if _, ok := allowedMimetypes[strings.TrimSpace(base)]; !ok {
		return apperror.Validation("file type is not allowed")
	}

	return nil
}

// Upload writes the file to disk first and only then links the database
// row. Every failure after the write compensates by deleting the file, so
// no path ever ends with an orphaned file.
func (s *attachmentService) Upload(ctx context.Context, userId uuid.UUID, in *UploadInput) (*dto.AttachmentResponse, error) {
	if err := validateUpload(in.OriginalName, in.Mimetype, in.Size, s.maxSizeBytes); err != nil {
		return nil, err
	}

	filename := uuid.New().String() + strings.ToLower(filepath.Ext(in.OriginalName))

	path, written, err := s.fileStore.Save(ctx, filename, io.LimitReader(in.Content, s.maxSizeBytes+1))
	if err != nil {
		return nil, apperror.Storage("failed to store file", err)
	}
	if written > s.maxSizeBytes {
		s.rollbackFile(ctx, path, "size exceeded during write")
		return nil, apperror.Validation(fmt.Sprintf("file exceeds the %d MB limit", s.maxSizeBytes/(1024*1024)))
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: in.NoteId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		s.rollbackFile(ctx, path, "note lookup failed")
		return nil, err
	}
	if note == nil {
		s.rollbackFile(ctx, path, "note not found")
		return nil, apperror.NotFound("note")
	}

	attachment := &entity.Attachment{
		Id:           uuid.New(),
		Filename:     filename,
		OriginalName: in.OriginalName,
		Mimetype:     in.Mimetype,
		Size:         written,
		Path:         path,
		NoteId:       note.Id,
		UserId:       userId,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := uow.AttachmentRepository().Create(ctx, attachment); err != nil {
		s.rollbackFile(ctx, path, "row insert failed")
		return nil, err
	}

	s.publisherService.PublishAudit(ctx, "ATTACHMENT_LINKED", map[string]any{
		"attachment_id": attachment.Id,
		"note_id":       note.Id,
		"user_id":       userId,
		"size":          written,
	})

	return attachmentResponse(attachment), nil
}

func (s *attachmentService) Fetch(ctx context.Context, userId, id uuid.UUID) (*entity.Attachment, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	attachment, err := uow.AttachmentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if attachment == nil {
		return nil, apperror.NotFound("attachment")
	}

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: attachment.NoteId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NotFound("attachment")
	}

	return attachment, nil
}

// Remove deletes the file before the row. If the file cannot be deleted
// the row is kept so the operation stays retryable; the inverse order
// would strand a file nobody references. A file that is already gone
// counts as deleted, otherwise the row could never be removed.
func (s *attachmentService) Remove(ctx context.Context, userId, id uuid.UUID) error {
	attachment, err := s.Fetch(ctx, userId, id)
	if err != nil {
		return err
	}

	if err := s.fileStore.Remove(attachment.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return apperror.Storage("failed to delete file, try again", err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.AttachmentRepository().Delete(ctx, attachment.Id)
}

func (s *attachmentService) rollbackFile(ctx context.Context, path, reason string) {
	if err := s.fileStore.Remove(path); err != nil {
		s.logger.Error("attachment", "rollback failed, file left on disk", map[string]interface{}{
			"path":   path,
			"reason": reason,
			"error":  err.Error(),
		})
		return
	}

	s.publisherService.PublishAudit(ctx, "ATTACHMENT_ROLLED_BACK", map[string]any{
		"path":   path,
		"reason": reason,
	})
}

func attachmentResponse(attachment *entity.Attachment) *dto.AttachmentResponse {
	return &dto.AttachmentResponse{
		Id:           attachment.Id,
		Filename:     attachment.Filename,
		OriginalName: attachment.OriginalName,
		Mimetype:     attachment.Mimetype,
		Size:         attachment.Size,
		NoteId:       attachment.NoteId,
		CreatedAt:    attachment.CreatedAt,
	}
}
