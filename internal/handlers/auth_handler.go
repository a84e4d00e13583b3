package handlers

import (
	"errors"
	"log"

	"geugeu/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/google", h.HandleGoogleLogin)
	authRoutes.Post("/apple", h.HandleAppleLogin)
}

// HandleLogin authenticates a form-encoded username (email) and password
// pair and issues a bearer token. The failure body never reveals whether
// the email exists.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	email := c.FormValue("username")
	password := c.FormValue("password")
	if email == "" || password == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"detail": "Incorrect username or password",
		})
	}

	token, err := h.authService.Login(email, password)
	if err != nil {
		log.Printf("Login failed for request to %s: %v", c.Path(), err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"detail": "Incorrect username or password",
		})
	}
	return c.JSON(token)
}

// OAuthLoginRequest is the body of the Google and Apple login endpoints.
type OAuthLoginRequest struct {
	Code        string `json:"code" validate:"required"`
	RedirectURI string `json:"redirect_uri" validate:"required,url"`
}

// HandleGoogleLogin exchanges a Google authorization code for a token.
func (h *AuthHandler) HandleGoogleLogin(c *fiber.Ctx) error {
	var req OAuthLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Validation failed",
		})
	}

	token, err := h.authService.GoogleLogin(c.Context(), req.Code, req.RedirectURI)
	if err != nil {
		log.Printf("Google login failed: %v", err)
		return h.oauthError(c, err)
	}
	return c.JSON(token)
}

// HandleAppleLogin exchanges a Sign in with Apple code for a token.
func (h *AuthHandler) HandleAppleLogin(c *fiber.Ctx) error {
	var req OAuthLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Validation failed",
		})
	}

	token, err := h.authService.AppleLogin(c.Context(), req.Code, req.RedirectURI)
	if err != nil {
		log.Printf("Apple login failed: %v", err)
		return h.oauthError(c, err)
	}
	return c.JSON(token)
}

func (h *AuthHandler) oauthError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrInvalidCredential) || errors.Is(err, services.ErrUnknownAccount) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"detail": "Cannot sign in with this account",
		})
	}
	return respondError(c, err)
}
