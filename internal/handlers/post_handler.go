package handlers

import (
	"log"

	"geugeu/internal/middleware"
	"geugeu/internal/repositories"
	"geugeu/internal/services"

	"github.com/gofiber/fiber/v2"
)

// PostHandler handles HTTP requests for posts.
type PostHandler struct {
	postService *services.PostService
	authService *services.AuthService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(postService *services.PostService, authService *services.AuthService) *PostHandler {
	return &PostHandler{
		postService: postService,
		authService: authService,
	}
}

// RegisterRoutes registers the post routes with the Fiber app. Reads are
// public; mutations require a credential.
func (h *PostHandler) RegisterRoutes(router fiber.Router) {
	postRoutes := router.Group("/posts")
	postRoutes.Get("/", h.HandleGetPosts)
	postRoutes.Get("/:code", h.HandleGetPost)

	authRequired := middleware.AuthRequired(h.authService)
	postRoutes.Post("/", authRequired, h.HandleCreatePost)
	postRoutes.Put("/:code", authRequired, h.HandleUpdatePost)
	postRoutes.Delete("/:code", authRequired, h.HandleDeletePost)
}

// HandleCreatePost creates a post from a multipart form carrying title,
// content and any number of image files.
func (h *PostHandler) HandleCreatePost(c *fiber.Ctx) error {
	title := c.FormValue("title")
	content := c.FormValue("content")
	if title == "" || content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Title and content are required",
		})
	}

	files, err := formUploads(c, "images")
	if err != nil {
		log.Printf("Error reading uploaded images: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Invalid upload",
		})
	}

	post, err := h.postService.CreatePost(c.Context(), middleware.CurrentUser(c), title, content, files)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newPostResponse(post))
}

// HandleGetPosts lists posts newest first, optionally filtered by author
// code.
func (h *PostHandler) HandleGetPosts(c *fiber.Ctx) error {
	page, pageSize := pagination(c, 1)
	posts, count, err := h.postService.GetPosts(repositories.PostFilter{
		AuthorCode: c.Query("author"),
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		return respondError(c, err)
	}

	resp := PostListResponse{Count: count, Items: make([]PostResponse, 0, len(posts))}
	for i := range posts {
		resp.Items = append(resp.Items, newPostResponse(&posts[i]))
	}
	return c.JSON(resp)
}

// HandleGetPost retrieves a single post by its public code.
func (h *PostHandler) HandleGetPost(c *fiber.Ctx) error {
	post, err := h.postService.GetPost(c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newPostResponse(post))
}

// HandleUpdatePost rewrites a post, owner or admin only.
func (h *PostHandler) HandleUpdatePost(c *fiber.Ctx) error {
	title := c.FormValue("title")
	content := c.FormValue("content")
	if title == "" || content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Title and content are required",
		})
	}

	files, err := formUploads(c, "images")
	if err != nil {
		log.Printf("Error reading uploaded images: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Invalid upload",
		})
	}

	post, err := h.postService.UpdatePost(c.Context(), middleware.CurrentUser(c), c.Params("code"), title, content, files)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newPostResponse(post))
}

// HandleDeletePost soft deletes a post, owner or admin only.
func (h *PostHandler) HandleDeletePost(c *fiber.Ctx) error {
	if err := h.postService.DeletePost(middleware.CurrentUser(c), c.Params("code")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
