package handlers

import (
	"log"

	"geugeu/internal/middleware"
	"geugeu/internal/repositories"
	"geugeu/internal/services"

	"github.com/gofiber/fiber/v2"
)

// DrawingHandler handles HTTP requests for drawings.
type DrawingHandler struct {
	drawingService *services.DrawingService
	authService    *services.AuthService
}

// NewDrawingHandler creates a new DrawingHandler.
func NewDrawingHandler(drawingService *services.DrawingService, authService *services.AuthService) *DrawingHandler {
	return &DrawingHandler{
		drawingService: drawingService,
		authService:    authService,
	}
}

// RegisterRoutes registers the drawing routes with the Fiber app.
func (h *DrawingHandler) RegisterRoutes(router fiber.Router) {
	drawingRoutes := router.Group("/drawings")
	drawingRoutes.Get("/", h.HandleGetDrawings)
	drawingRoutes.Get("/:code", h.HandleGetDrawing)

	authRequired := middleware.AuthRequired(h.authService)
	drawingRoutes.Post("/", authRequired, h.HandleCreateDrawing)
	drawingRoutes.Put("/:code", authRequired, h.HandleUpdateDrawing)
	drawingRoutes.Delete("/:code", authRequired, h.HandleDeleteDrawing)
}

// HandleCreateDrawing submits a drawn response to a post. The multipart
// form carries post_code, content and image files.
func (h *DrawingHandler) HandleCreateDrawing(c *fiber.Ctx) error {
	postCode := c.FormValue("post_code")
	content := c.FormValue("content")
	if postCode == "" || content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Post code and content are required",
		})
	}

	files, err := formUploads(c, "images")
	if err != nil {
		log.Printf("Error reading uploaded images: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Invalid upload",
		})
	}

	drawing, err := h.drawingService.CreateDrawing(c.Context(), middleware.CurrentUser(c), postCode, content, files)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newDrawingResponse(drawing))
}

// HandleGetDrawings lists drawings newest first, optionally filtered by
// post code and author code.
func (h *DrawingHandler) HandleGetDrawings(c *fiber.Ctx) error {
	page, pageSize := pagination(c, 1)
	drawings, count, err := h.drawingService.GetDrawings(repositories.DrawingFilter{
		PostCode:   c.Query("post"),
		AuthorCode: c.Query("author"),
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		return respondError(c, err)
	}

	resp := DrawingListResponse{Count: count, Items: make([]DrawingResponse, 0, len(drawings))}
	for i := range drawings {
		resp.Items = append(resp.Items, newDrawingResponse(&drawings[i]))
	}
	return c.JSON(resp)
}

// HandleGetDrawing retrieves a single drawing by its public code.
func (h *DrawingHandler) HandleGetDrawing(c *fiber.Ctx) error {
	drawing, err := h.drawingService.GetDrawing(c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newDrawingResponse(drawing))
}

// HandleUpdateDrawing rewrites a drawing, owner or admin only.
func (h *DrawingHandler) HandleUpdateDrawing(c *fiber.Ctx) error {
	content := c.FormValue("content")
	if content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Content is required",
		})
	}

	files, err := formUploads(c, "images")
	if err != nil {
		log.Printf("Error reading uploaded images: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Invalid upload",
		})
	}

	drawing, err := h.drawingService.UpdateDrawing(c.Context(), middleware.CurrentUser(c), c.Params("code"), content, files)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newDrawingResponse(drawing))
}

// HandleDeleteDrawing soft deletes a drawing, owner or admin only.
func (h *DrawingHandler) HandleDeleteDrawing(c *fiber.Ctx) error {
	if err := h.drawingService.DeleteDrawing(middleware.CurrentUser(c), c.Params("code")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
