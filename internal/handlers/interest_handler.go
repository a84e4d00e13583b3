package handlers

import (
	"geugeu/internal/middleware"
	"geugeu/internal/services"

	"github.com/gofiber/fiber/v2"
)

// InterestHandler handles HTTP requests for interest (like) toggling and
// listing.
type InterestHandler struct {
	interestService *services.InterestService
	authService     *services.AuthService
}

// NewInterestHandler creates a new InterestHandler.
func NewInterestHandler(interestService *services.InterestService, authService *services.AuthService) *InterestHandler {
	return &InterestHandler{
		interestService: interestService,
		authService:     authService,
	}
}

// RegisterRoutes registers the interest routes with the Fiber app. Listing
// a post's interests works anonymously but personalizes is_interested for
// authenticated callers.
func (h *InterestHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/posts/:code/interests", middleware.AuthRequired(h.authService), h.HandleToggleInterest)
	router.Get("/posts/:code/interests", middleware.AuthOptional(h.authService), h.HandleGetPostInterests)
	router.Get("/users/:code/interests", h.HandleGetUserInterests)
}

// HandleToggleInterest flips the acting user's interest in a post.
func (h *InterestHandler) HandleToggleInterest(c *fiber.Ctx) error {
	status, err := h.interestService.Toggle(middleware.CurrentUser(c), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(status)
}

// HandleGetPostInterests lists who is interested in a post. A page_size of
// zero returns the count and the caller's own status only.
func (h *InterestHandler) HandleGetPostInterests(c *fiber.Ctx) error {
	page, pageSize := pagination(c, 0)
	list, err := h.interestService.GetPostInterests(c.Params("code"), middleware.CurrentUser(c), page, pageSize)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newInterestListResponse(list.Items, list.Count, list.IsInterested))
}

// HandleGetUserInterests lists the posts a user marked interest in.
func (h *InterestHandler) HandleGetUserInterests(c *fiber.Ctx) error {
	page, pageSize := pagination(c, 1)
	list, err := h.interestService.GetUserInterests(c.Params("code"), page, pageSize)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newInterestListResponse(list.Items, list.Count, list.IsInterested))
}
