package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/tutor-booking/services"
	"github.com/meinhoongagan/tutor-booking/utils"
	"go.uber.org/zap"
)

var errBadBody = fiber.NewError(fiber.StatusBadRequest, "Invalid request body")

// NewErrorHandler maps service errors onto status codes. API routes get a JSON
// {message} body, pages get plain text. Internal errors are logged and never
// shown to the caller.
func NewErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code, message := classify(err)
		if code >= fiber.StatusInternalServerError {
			logger.Error("Request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
		}

		if strings.HasPrefix(c.Path(), "/api") {
			return c.Status(code).JSON(utils.ErrorResponse{Message: message})
		}
		return c.Status(code).SendString(message)
	}
}

func classify(err error) (int, string) {
	var (
		validation *services.ValidationError
		notFound   *services.NotFoundError
		fiberErr   *fiber.Error
	)

	switch {
	case errors.As(err, &validation):
		return fiber.StatusBadRequest, validation.Message
	case errors.Is(err, services.ErrSlotUnavailable):
		return fiber.StatusBadRequest, "This time slot is already booked"
	case errors.Is(err, services.ErrEmailTaken):
		return fiber.StatusBadRequest, "User with this email already exists"
	case errors.As(err, &notFound):
		return fiber.StatusNotFound, notFound.Error()
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound, "Not found"
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden, "Unauthorized"
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, services.ErrAdminRequired):
		return fiber.StatusForbidden, "Unauthorized access"
	case errors.Is(err, utils.ErrUploadsDisabled):
		return fiber.StatusServiceUnavailable, "Image uploads are not configured"
	case errors.As(err, &fiberErr):
		return fiberErr.Code, fiberErr.Message
	default:
		return fiber.StatusInternalServerError, "Internal server error"
	}
}
