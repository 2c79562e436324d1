package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/vis-hal-git/Ai-interviewer/internal/logger"
	"github.com/vis-hal-git/Ai-interviewer/internal/services"
)

var validate = validator.New()

// errorStatus maps service sentinels to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrInvalidStatus), errors.Is(err, services.ErrInvalidUpload):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError keeps internal wording away from clients: 404, 403 and 500
// carry a fixed message, only validation failures echo err.
func respondError(c *fiber.Ctx, err error, action string) error {
	status := errorStatus(err)

	var msg string
	switch status {
	case fiber.StatusNotFound:
		msg = "resource not found"
	case fiber.StatusForbidden:
		msg = "access to this resource is forbidden"
	case fiber.StatusBadRequest:
		msg = err.Error()
	default:
		logger.Error().Err(err).Str("path", c.Path()).Msg("❌ " + action)
		msg = action
	}

	return c.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	})
}
