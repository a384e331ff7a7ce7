package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"studynotes-be/internal/config"
	"studynotes-be/internal/dto"
	"studynotes-be/internal/entity"
	"studynotes-be/internal/pkg/apperror"
	"studynotes-be/internal/repository/specification"
	"studynotes-be/internal/repository/unitofwork"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	authConfig       config.AuthConfig
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	authConfig config.AuthConfig,
) IAuthService {
	return &authService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		authConfig:       authConfig,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !strings.HasSuffix(email, s.authConfig.AllowedEmailDomain) {
		return nil, apperror.Validation(
			fmt.Sprintf("email must belong to the %s domain", s.authConfig.AllowedEmailDomain))
	}
	if len(req.Password) < s.authConfig.MinPasswordLength {
		return nil, apperror.Validation(
			fmt.Sprintf("password must be at least %d characters", s.authConfig.MinPasswordLength))
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Id:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         req.Name,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	// The existence check above races with concurrent registrations; the
	// unique index on email settles it and surfaces here as a conflict.
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	s.publisherService.PublishAudit(ctx, "USER_REGISTERED", map[string]any{
		"user_id": user.Id,
		"email":   user.Email,
	})

	token, err := s.mintToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: token,
		User:  toUserDTO(user),
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.Auth("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.Auth("invalid credentials")
	}

	if !user.IsActive {
		return nil, apperror.Auth("account is deactivated")
	}

	token, err := s.mintToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: token,
		User:  toUserDTO(user),
	}, nil
}

func (s *authService) mintToken(user *entity.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"email":   user.Email,
		"exp":     time.Now().Add(time.Duration(s.authConfig.TokenExpiryDays) * 24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.authConfig.JwtSecret))
}

func toUserDTO(user *entity.User) dto.UserDTO {
	return dto.UserDTO{
		Id:        user.Id,
		Email:     user.Email,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}
