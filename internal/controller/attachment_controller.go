package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"studynotes-be/internal/pkg/apperror"
	"studynotes-be/internal/pkg/serverutils"
	"studynotes-be/internal/service"
)

type IAttachmentController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Upload(ctx *fiber.Ctx) error
	Download(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type attachmentController struct {
	attachmentService service.IAttachmentService
}

func NewAttachmentController(attachmentService service.IAttachmentService) IAttachmentController {
	return &attachmentController{
		attachmentService: attachmentService,
	}
}

func (c *attachmentController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/attachment/v1")
	h.Use(auth)
	h.Post("", c.Upload)
	h.Get(":id/download", c.Download)
	h.Delete(":id", c.Delete)
}

func (c *attachmentController) Upload(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	noteId, err := uuid.Parse(ctx.FormValue("note_id"))
	if err != nil {
		return apperror.Validation("note_id is required")
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "File is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperror.Storage("failed to read uploaded file", err)
	}
	defer file.Close()

	res, err := c.attachmentService.Upload(ctx.Context(), userId, &service.UploadInput{
		NoteId:       noteId,
		OriginalName: fileHeader.Filename,
		Mimetype:     fileHeader.Header.Get("Content-Type"),
		Size:         fileHeader.Size,
		Content:      file,
	})
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success upload attachment", res))
}

func (c *attachmentController) Download(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid attachment id")
	}

	attachment, err := c.attachmentService.Fetch(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.Download(attachment.Path, attachment.OriginalName)
}

func (c *attachmentController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid attachment id")
	}

	if err := c.attachmentService.Remove(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete attachment", nil))
}
