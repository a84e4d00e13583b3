package middleware

import (
	"errors"
	"log"

	"geugeu/internal/models"
	"geugeu/internal/services"

	"github.com/gofiber/fiber/v2"
)

const currentUserKey = "current_user"

// AuthRequired rejects the request before the handler runs unless the
// Authorization header carries a token that verifies and resolves to a live
// account. The pipeline is strictly verify then resolve: each failure
// short-circuits the rest.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := resolveRequest(c, authService)
		if err != nil {
			// Missing, invalid and unresolvable credentials all look the
			// same to the client; only the log tells them apart.
			log.Printf("Auth rejected for %s %s: %v", c.Method(), c.Path(), err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "Unauthorized",
			})
		}
		c.Locals(currentUserKey, user)
		return c.Next()
	}
}

// AuthOptional runs the same pipeline but lets the request through without
// an identity when the credential is absent or unusable. Read-only
// endpoints use it to personalize output.
func AuthOptional(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := resolveRequest(c, authService)
		if err == nil {
			c.Locals(currentUserKey, user)
		} else if !errors.Is(err, services.ErrMissingCredential) {
			log.Printf("Ignoring unusable credential for %s %s: %v", c.Method(), c.Path(), err)
		}
		return c.Next()
	}
}

// CurrentUser returns the acting user stored by AuthRequired or
// AuthOptional, or nil when the request is anonymous.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(currentUserKey).(*models.User)
	return user
}

func resolveRequest(c *fiber.Ctx, authService *services.AuthService) (*models.User, error) {
	tokenString, err := services.BearerToken(c.Get("Authorization"))
	if err != nil {
		return nil, err
	}
	subject, err := authService.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}
	return authService.ResolveUser(subject)
}
