package handlers

import (
	"log"
	"strings"

	"geugeu/internal/middleware"
	"geugeu/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user accounts.
type UserHandler struct {
	userService *services.UserService
	authService *services.AuthService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, authService *services.AuthService) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app. Signup is
// public; everything under /me requires a credential.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/", h.HandleSignup)

	authRequired := middleware.AuthRequired(h.authService)
	userRoutes.Get("/me", authRequired, h.HandleGetMe)
	userRoutes.Put("/me", authRequired, h.HandleUpdateMe)
	userRoutes.Put("/me/profile-image", authRequired, h.HandleUpdateProfileImage)
	userRoutes.Delete("/me", authRequired, h.HandleDeleteMe)
}

// SignupRequest is the body of the signup endpoint.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Nickname string `json:"nickname" validate:"required,min=1,max=255"`
	Password string `json:"password" validate:"required,min=8"`
}

// HandleSignup registers a local account.
func (h *UserHandler) HandleSignup(c *fiber.Ctx) error {
	var req SignupRequest
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

	user, err := h.userService.Signup(req.Email, req.Nickname, req.Password)
	if err != nil {
		log.Printf("Signup failed: %v", err)
		if strings.Contains(err.Error(), "cannot sign up") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"detail": "Cannot sign up with this email",
			})
		}
		if strings.Contains(err.Error(), "already exists") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"detail": "User already exists",
			})
		}
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newUserResponse(user))
}

// HandleGetMe returns the acting user's profile.
func (h *UserHandler) HandleGetMe(c *fiber.Ctx) error {
	return c.JSON(newUserResponse(middleware.CurrentUser(c)))
}

// UserUpdateRequest is the body of the profile update endpoint.
type UserUpdateRequest struct {
	Nickname string `json:"nickname" validate:"required,min=1,max=255"`
}

// HandleUpdateMe changes the acting user's nickname.
func (h *UserHandler) HandleUpdateMe(c *fiber.Ctx) error {
	var req UserUpdateRequest
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

	user, err := h.userService.UpdateProfile(middleware.CurrentUser(c), req.Nickname)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newUserResponse(user))
}

// HandleUpdateProfileImage stores the uploaded file as the profile image.
func (h *UserHandler) HandleUpdateProfileImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "A file is required",
		})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer file.Close()

	user, err := h.userService.UpdateProfileImage(c.Context(), middleware.CurrentUser(c), services.Upload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newUserResponse(user))
}

// HandleDeleteMe soft deletes the acting user's account.
func (h *UserHandler) HandleDeleteMe(c *fiber.Ctx) error {
	if err := h.userService.Delete(middleware.CurrentUser(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
