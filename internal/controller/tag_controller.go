package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"studynotes-be/internal/dto"
	"studynotes-be/internal/pkg/apperror"
	"studynotes-be/internal/pkg/serverutils"
	"studynotes-be/internal/service"
)

type ITagController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Create(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type tagController struct {
	tagService service.ITagService
}

func NewTagController(tagService service.ITagService) ITagController {
	return &tagController{
		tagService: tagService,
	}
}

func (c *tagController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/tag/v1")
	h.Use(auth)
	h.Post("", c.Create)
	h.Get("", c.GetAll)
	h.Delete(":id", c.Delete)
}

func (c *tagController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateTagRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.tagService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create tag", res))
}

func (c *tagController) GetAll(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.tagService.GetAll(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get tags", res))
}

func (c *tagController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid tag id")
	}

	if err := c.tagService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete tag", nil))
}
