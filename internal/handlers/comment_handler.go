package handlers

import (
	"geugeu/internal/middleware"
	"geugeu/internal/models"
	"geugeu/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CommentHandler handles HTTP requests for comments on posts and drawings.
type CommentHandler struct {
	commentService *services.CommentService
	authService    *services.AuthService
	validate       *validator.Validate
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *services.CommentService, authService *services.AuthService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		authService:    authService,
		validate:       validator.New(),
	}
}

// RegisterRoutes mounts the comment routes under both parent resources.
// All comment endpoints require a credential.
func (h *CommentHandler) RegisterRoutes(router fiber.Router) {
	authRequired := middleware.AuthRequired(h.authService)

	postComments := router.Group("/posts/:code/comments", authRequired)
	postComments.Post("/", h.HandleCreatePostComment)
	postComments.Get("/", h.HandleGetPostComments)
	postComments.Get("/:commentCode", h.HandleGetPostComment)
	postComments.Put("/:commentCode", h.HandleUpdatePostComment)
	postComments.Delete("/:commentCode", h.HandleDeletePostComment)

	drawingComments := router.Group("/drawings/:code/comments", authRequired)
	drawingComments.Post("/", h.HandleCreateDrawingComment)
	drawingComments.Get("/", h.HandleGetDrawingComments)
	drawingComments.Get("/:commentCode", h.HandleGetDrawingComment)
	drawingComments.Put("/:commentCode", h.HandleUpdateDrawingComment)
	drawingComments.Delete("/:commentCode", h.HandleDeleteDrawingComment)
}

// CreateCommentRequest is the body for creating a comment. ParentCode makes
// the comment a reply.
type CreateCommentRequest struct {
	Content    string `json:"content" validate:"required"`
	ParentCode string `json:"parent_code" validate:"omitempty,uuid"`
}

// UpdateCommentRequest is the body for rewriting a comment.
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// HandleCreatePostComment adds a comment to a post.
func (h *CommentHandler) HandleCreatePostComment(c *fiber.Ctx) error {
	req, ok := h.parseCreate(c)
	if !ok {
		return nil
	}
	comment, err := h.commentService.CreatePostComment(middleware.CurrentUser(c), c.Params("code"), req.Content, req.ParentCode)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newCommentResponse(comment))
}

// HandleGetPostComments lists a post's top-level comments.
func (h *CommentHandler) HandleGetPostComments(c *fiber.Ctx) error {
	comments, err := h.commentService.GetPostComments(c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(commentList(comments))
}

// HandleGetPostComment retrieves one comment of a post.
func (h *CommentHandler) HandleGetPostComment(c *fiber.Ctx) error {
	comment, err := h.commentService.GetPostComment(c.Params("code"), c.Params("commentCode"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newCommentResponse(comment))
}

// HandleUpdatePostComment rewrites a comment, owner or admin only.
func (h *CommentHandler) HandleUpdatePostComment(c *fiber.Ctx) error {
	req, ok := h.parseUpdate(c)
	if !ok {
		return nil
	}
	comment, err := h.commentService.UpdatePostComment(middleware.CurrentUser(c), c.Params("code"), c.Params("commentCode"), req.Content)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newCommentResponse(comment))
}

// HandleDeletePostComment soft deletes a comment, owner or admin only.
func (h *CommentHandler) HandleDeletePostComment(c *fiber.Ctx) error {
	err := h.commentService.DeletePostComment(middleware.CurrentUser(c), c.Params("code"), c.Params("commentCode"))
	if err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleCreateDrawingComment adds a comment to a drawing.
func (h *CommentHandler) HandleCreateDrawingComment(c *fiber.Ctx) error {
	req, ok := h.parseCreate(c)
	if !ok {
		return nil
	}
	comment, err := h.commentService.CreateDrawingComment(middleware.CurrentUser(c), c.Params("code"), req.Content, req.ParentCode)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newCommentResponse(comment))
}

// HandleGetDrawingComments lists a drawing's top-level comments.
func (h *CommentHandler) HandleGetDrawingComments(c *fiber.Ctx) error {
	comments, err := h.commentService.GetDrawingComments(c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(commentList(comments))
}

// HandleGetDrawingComment retrieves one comment of a drawing.
func (h *CommentHandler) HandleGetDrawingComment(c *fiber.Ctx) error {
	comment, err := h.commentService.GetDrawingComment(c.Params("code"), c.Params("commentCode"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newCommentResponse(comment))
}

// HandleUpdateDrawingComment rewrites a comment, owner or admin only.
func (h *CommentHandler) HandleUpdateDrawingComment(c *fiber.Ctx) error {
	req, ok := h.parseUpdate(c)
	if !ok {
		return nil
	}
	comment, err := h.commentService.UpdateDrawingComment(middleware.CurrentUser(c), c.Params("code"), c.Params("commentCode"), req.Content)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newCommentResponse(comment))
}

// HandleDeleteDrawingComment soft deletes a comment, owner or admin only.
func (h *CommentHandler) HandleDeleteDrawingComment(c *fiber.Ctx) error {
	err := h.commentService.DeleteDrawingComment(middleware.CurrentUser(c), c.Params("code"), c.Params("commentCode"))
	if err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseCreate reads and validates the create body, writing the error
// response itself when the body is unusable.
func (h *CommentHandler) parseCreate(c *fiber.Ctx) (CreateCommentRequest, bool) {
	var req CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Invalid request body",
		})
		return req, false
	}
	if err := h.validate.Struct(req); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Validation failed",
		})
		return req, false
	}
	return req, true
}

func (h *CommentHandler) parseUpdate(c *fiber.Ctx) (UpdateCommentRequest, bool) {
	var req UpdateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Invalid request body",
		})
		return req, false
	}
	if err := h.validate.Struct(req); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Validation failed",
		})
		return req, false
	}
	return req, true
}

func commentList(comments []models.Comment) CommentListResponse {
	resp := CommentListResponse{Count: len(comments), Items: make([]CommentResponse, 0, len(comments))}
	for i := range comments {
		resp.Items = append(resp.Items, newCommentResponse(&comments[i]))
	}
	return resp
}
