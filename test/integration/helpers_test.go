package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"studynotes-be/internal/config"
	"studynotes-be/internal/entity"
	"studynotes-be/internal/pkg/logger"
	"studynotes-be/internal/repository/memory"
	"studynotes-be/internal/repository/unitofwork"
	"studynotes-be/internal/service"
	"studynotes-be/pkg/database"
	"studynotes-be/pkg/storage"
)

type testEnv struct {
	db         *gorm.DB
	uowFactory unitofwork.RepositoryFactory
	store      *storage.LocalStore

	authService       service.IAuthService
	userService       service.IUserService
	subjectService    service.ISubjectService
	tagService        service.ITagService
	noteService       service.INoteService
	groupService      service.IGroupService
	attachmentService service.IAttachmentService
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	sysLogger := logger.NewZapLogger(t.TempDir()+"/test.log", false)

	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	publisher := service.NewPublisherService("AUDIT_EVENTS_TEST", pubSub, sysLogger)

	authCfg := config.AuthConfig{
		JwtSecret:          "integration-secret",
		TokenExpiryDays:    7,
		AllowedEmailDomain: "@stud.ase.ro",
		MinPasswordLength:  6,
	}

	noteService := service.NewNoteService(uowFactory, publisher, store, sysLogger)

	return &testEnv{
		db:                gormDB,
		uowFactory:        uowFactory,
		store:             store,
		authService:       service.NewAuthService(uowFactory, publisher, authCfg),
		userService:       service.NewUserService(uowFactory, memory.NewProfileCache(), store, publisher, sysLogger),
		subjectService:    service.NewSubjectService(uowFactory, noteService),
		tagService:        service.NewTagService(uowFactory),
		noteService:       noteService,
		groupService:      service.NewGroupService(uowFactory, noteService, publisher),
		attachmentService: service.NewAttachmentService(uowFactory, store, publisher, sysLogger, entity.MaxAttachmentSize),
	}
}

func randomSuffix() string {
	return uuid.New().String()[:8]
}

// createUser inserts a user directly and registers cleanup. Account
// deletion cascades, so removing the user tears down everything the
// test created under it.
func (e *testEnv) createUser(t *testing.T) *entity.User {
	t.Helper()

	user := &entity.User{
		Id:           uuid.New(),
		Email:        "it-" + uuid.New().String() + "@stud.ase.ro",
		PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		Name:         "Integration Test User",
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	ctx := context.Background()
	uow := e.uowFactory.NewUnitOfWork(ctx)
	require.NoError(t, uow.UserRepository().Create(ctx, user))

	t.Cleanup(func() {
		e.db.Exec("DELETE FROM users WHERE id = ?", user.Id)
	})

	return user
}
