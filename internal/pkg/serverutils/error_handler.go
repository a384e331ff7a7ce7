package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"studynotes-be/internal/pkg/apperror"
)

func statusForKind(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return fiber.StatusBadRequest
	case apperror.KindAuth:
		return fiber.StatusUnauthorized
	case apperror.KindForbidden:
		return fiber.StatusForbidden
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandlerMiddleware translates errors bubbling out of handlers into the
// JSON error envelope. Unclassified errors surface as a generic 500 so
// internals never leak to clients.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			status := statusForKind(appErr.Kind)
			resp := ErrorResponse(status, appErr.Message)
			if len(appErr.Fields) > 0 {
				return ctx.Status(status).JSON(fiber.Map{
					"success": false,
					"code":    status,
					"message": appErr.Message,
					"fields":  appErr.Fields,
				})
			}
			return ctx.Status(status).JSON(resp)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, "internal server error"))
	}
}
