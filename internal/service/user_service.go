package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"studynotes-be/internal/dto"
	"studynotes-be/internal/entity"
	"studynotes-be/internal/pkg/apperror"
	"studynotes-be/internal/pkg/logger"
	"studynotes-be/internal/repository/memory"
	"studynotes-be/internal/repository/specification"
	"studynotes-be/internal/repository/unitofwork"
	"studynotes-be/pkg/storage"
)

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	DeleteAccount(ctx context.Context, userId uuid.UUID) error
}

type userService struct {
	uowFactory       unitofwork.RepositoryFactory
	profileCache     *memory.ProfileCache
	fileStore        storage.FileStore
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewUserService(
	uowFactory unitofwork.RepositoryFactory,
	profileCache *memory.ProfileCache,
	fileStore storage.FileStore,
	publisherService IPublisherService,
	logger logger.ILogger,
) IUserService {
	return &userService{
		uowFactory:       uowFactory,
		profileCache:     profileCache,
		fileStore:        fileStore,
		publisherService: publisherService,
		logger:           logger,
	}
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error) {
	if cached, ok := s.profileCache.Get(userId); ok {
		return profileResponse(cached), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user")
	}

	s.profileCache.Save(user)
	return profileResponse(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user")
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}
	user.UpdatedAt = time.Now()

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	s.profileCache.Invalidate(userId)
	return profileResponse(user), nil
}

// DeleteAccount removes the user row and lets the database cascade through
// subjects, tags, notes, group memberships and attachment rows. Attachment
// files are collected first and unlinked afterwards; a file that fails to
// delete is logged, never resurrected.
func (s *userService) DeleteAccount(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NotFound("user")
	}

	attachments, err := uow.AttachmentRepository().FindAll(ctx, specification.OwnedBy{UserID: userId})
	if err != nil {
		return err
	}

	if err := uow.UserRepository().Delete(ctx, userId); err != nil {
		return err
	}

	s.profileCache.Invalidate(userId)

	for _, att := range attachments {
		if err := s.fileStore.Remove(att.Path); err != nil {
			s.logger.Warn("user", "orphaned attachment file left on disk", map[string]interface{}{
				"attachment_id": att.Id,
				"path":          att.Path,
				"error":         err.Error(),
			})
		}
	}

	s.publisherService.PublishAudit(ctx, "USER_DELETED", map[string]any{
		"user_id": userId,
	})

	return nil
}

func profileResponse(user *entity.User) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		UserDTO:   toUserDTO(user),
		UpdatedAt: user.UpdatedAt,
	}
}
