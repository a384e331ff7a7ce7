package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"studynotes-be/internal/dto"
	"studynotes-be/internal/pkg/apperror"
	"studynotes-be/internal/pkg/serverutils"
	"studynotes-be/internal/service"
)

type IGroupController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Create(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	AddMember(ctx *fiber.Ctx) error
	RemoveMember(ctx *fiber.Ctx) error
	ShareNote(ctx *fiber.Ctx) error
	UnshareNote(ctx *fiber.Ctx) error
}

type groupController struct {
	groupService service.IGroupService
}

func NewGroupController(groupService service.IGroupService) IGroupController {
	return &groupController{
		groupService: groupService,
	}
}

func (c *groupController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/group/v1")
	h.Use(auth)
	h.Post("", c.Create)
	h.Get("", c.GetAll)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
	h.Post(":id/members", c.AddMember)
	h.Delete(":id/members/:userId", c.RemoveMember)
	h.Post(":id/notes", c.ShareNote)
	h.Delete(":id/notes/:noteId", c.UnshareNote)
}

func (c *groupController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateGroupRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.groupService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create group", res))
}

func (c *groupController) GetAll(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.groupService.GetAll(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get groups", res))
}

func (c *groupController) Show(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid group id")
	}

	res, err := c.groupService.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show group", res))
}

func (c *groupController) Update(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid group id")
	}

	var req dto.UpdateGroupRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.groupService.Update(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update group", res))
}

func (c *groupController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid group id")
	}

	if err := c.groupService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete group", nil))
}

func (c *groupController) AddMember(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	groupId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid group id")
	}

	var req dto.AddMemberRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.groupService.AddMember(ctx.Context(), userId, groupId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success add member", res))
}

func (c *groupController) RemoveMember(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	groupId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid group id")
	}
	targetUserId, err := uuid.Parse(ctx.Params("userId"))
	if err != nil {
		return apperror.Validation("invalid user id")
	}

	if err := c.groupService.RemoveMember(ctx.Context(), userId, groupId, targetUserId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success remove member", nil))
}

func (c *groupController) ShareNote(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	groupId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid group id")
	}

	var req dto.ShareNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.groupService.ShareNote(ctx.Context(), userId, groupId, &req); err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse[any]("Success share note", nil))
}

func (c *groupController) UnshareNote(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	groupId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid group id")
	}
	noteId, err := uuid.Parse(ctx.Params("noteId"))
	if err != nil {
		return apperror.Validation("invalid note id")
	}

	if err := c.groupService.UnshareNote(ctx.Context(), userId, groupId, noteId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success unshare note", nil))
}
