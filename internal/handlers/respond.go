package handlers

import (
	"errors"
	"fmt"

	"kasir/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// statusForError maps a service error to an HTTP status code.
func statusForError(err error) int {
	if errors.Is(err, services.ErrInvalidCredentials) {
		return fiber.StatusUnauthorized
	}
	switch services.KindOf(err) {
	case services.KindValidation:
		return fiber.StatusBadRequest
	case services.KindNotFound:
		return fiber.StatusNotFound
	case services.KindConflict:
		return fiber.StatusConflict
	case services.KindTimeout:
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}

// fail writes the failure envelope: a machine-readable error kind plus a
// client-safe message. Internal error text never reaches the client.
func fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrInvalidCredentials) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "unauthorized",
			"message": "Invalid email or password.",
		})
	}
	return c.Status(statusForError(err)).JSON(fiber.Map{
		"success": false,
		"error":   string(services.KindOf(err)),
		"message": services.PublicMessage(err),
	})
}

// failValidation writes a 400 with per-field messages from validator.
func failValidation(c *fiber.Ctx, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string)
		for _, e := range verrs {
			fields[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   string(services.KindValidation),
			"message": "Validation failed",
			"fields":  fields,
		})
	}
	return fail(c, services.NewValidationError("invalid request"))
}

// badBody writes a 400 for an unparseable request body.
func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   string(services.KindValidation),
		"message": "Invalid request body",
	})
}
