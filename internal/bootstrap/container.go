package bootstrap

import (
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"studynotes-be/internal/config"
	"studynotes-be/internal/controller"
	"studynotes-be/internal/pkg/logger"
	"studynotes-be/internal/pkg/serverutils"
	"studynotes-be/internal/repository/memory"
	"studynotes-be/internal/repository/unitofwork"
	"studynotes-be/internal/service"
	"studynotes-be/pkg/storage"
)

type Container struct {
	// Controllers
	AuthController       controller.IAuthController
	UserController       controller.IUserController
	SubjectController    controller.ISubjectController
	TagController        controller.ITagController
	NoteController       controller.INoteController
	GroupController      controller.IGroupController
	AttachmentController controller.IAttachmentController
	HealthController     controller.IHealthController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	// AuthMiddleware verifies with the same secret the auth service
	// signs with.
	AuthMiddleware fiber.Handler

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	fileStore, err := storage.NewLocalStore(cfg.Upload.Dir)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize upload storage: %v", err)
	}

	profileCache := memory.NewProfileCache()

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Services
	publisherService := service.NewPublisherService(cfg.App.AuditTopic, pubSub, sysLogger)
	consumerService := service.NewAuditConsumerService(pubSub, cfg.App.AuditTopic, sysLogger)

	authService := service.NewAuthService(uowFactory, publisherService, cfg.Auth)
	userService := service.NewUserService(uowFactory, profileCache, fileStore, publisherService, sysLogger)
	noteService := service.NewNoteService(uowFactory, publisherService, fileStore, sysLogger)
	subjectService := service.NewSubjectService(uowFactory, noteService)
	tagService := service.NewTagService(uowFactory)
	groupService := service.NewGroupService(uowFactory, noteService, publisherService)
	attachmentService := service.NewAttachmentService(uowFactory, fileStore, publisherService, sysLogger, cfg.Upload.MaxSizeBytes)

	// 4. Controllers
	return &Container{
		AuthController:       controller.NewAuthController(authService),
		UserController:       controller.NewUserController(userService),
		SubjectController:    controller.NewSubjectController(subjectService),
		TagController:        controller.NewTagController(tagService),
		NoteController:       controller.NewNoteController(noteService),
		GroupController:      controller.NewGroupController(groupService),
		AttachmentController: controller.NewAttachmentController(attachmentService),
		HealthController:     controller.NewHealthController(),

		ConsumerService: consumerService,
		AuthMiddleware:  serverutils.JwtMiddleware(cfg.Auth.JwtSecret),
		Logger:          sysLogger,
	}
}
