package handlers

import (
	"errors"
	"log"

	"geugeu/internal/services"

	"github.com/gofiber/fiber/v2"
)

// respondError maps a service error kind onto an HTTP status with a short
// generic detail. All auth failure kinds collapse to the same 401 body so
// responses never reveal why a credential was rejected.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrMissingCredential),
		errors.Is(err, services.ErrInvalidCredential),
		errors.Is(err, services.ErrUnknownAccount):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"detail": "Unauthorized",
		})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"detail": "Forbidden",
		})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"detail": "Not found",
		})
	case errors.Is(err, services.ErrAlreadyExists),
		errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Bad request",
		})
	default:
		log.Printf("Unhandled error for %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "Internal server error",
		})
	}
}
