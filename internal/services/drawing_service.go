package services

import (
	"context"
	"fmt"
	"log"

	"geugeu/internal/models"
	"geugeu/internal/repositories"
)

// DrawingService handles business logic related to drawings.
type DrawingService struct {
	drawingRepo repositories.DrawingRepository
	postRepo    repositories.PostRepository
	store       ImageStore
	publisher   ActivityPublisher
}

// NewDrawingService creates a new DrawingService.
func NewDrawingService(drawingRepo repositories.DrawingRepository, postRepo repositories.PostRepository, store ImageStore, publisher ActivityPublisher) *DrawingService {
	return &DrawingService{
		drawingRepo: drawingRepo,
		postRepo:    postRepo,
		store:       store,
		publisher:   publisher,
	}
}

// CreateDrawing attaches a drawn response to a post. A post takes a single
// live drawing; a second submission is rejected.
func (s *DrawingService) CreateDrawing(ctx context.Context, user *models.User, postCode, content string, files []Upload) (*models.Drawing, error) {
	post, err := s.postRepo.GetByCode(postCode)
	if err != nil || post == nil {
		return nil, fmt.Errorf("post %s: %w", postCode, ErrNotFound)
	}

	exists, err := s.drawingRepo.ExistsForPost(post.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check drawings of post %s: %w", postCode, err)
	}
	if exists {
		return nil, fmt.Errorf("drawing already exists: %w", ErrAlreadyExists)
	}

	var images []models.Image
	for _, file := range files {
		url, err := s.store.Upload(ctx, file.Filename, file.ContentType, file.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to upload image %s: %w", file.Filename, err)
		}
		images = append(images, models.Image{URL: url})
	}

	drawing := &models.Drawing{
		PostID:   post.ID,
		AuthorID: user.ID,
		Content:  content,
		Post:     *post,
		Author:   *user,
		Images:   images,
	}
	if err := s.drawingRepo.Create(drawing); err != nil {
		return nil, fmt.Errorf("failed to create drawing: %w", err)
	}

	s.publishActivity("drawing.created", map[string]interface{}{
		"drawingCode": drawing.Code,
		"postCode":    post.Code,
		"authorCode":  user.Code,
	})
	return drawing, nil
}

// GetDrawings returns one page of drawings plus the total count.
func (s *DrawingService) GetDrawings(filter repositories.DrawingFilter) ([]models.Drawing, int64, error) {
	return s.drawingRepo.List(filter)
}

// GetDrawing retrieves a single drawing by its public code.
func (s *DrawingService) GetDrawing(code string) (*models.Drawing, error) {
	drawing, err := s.drawingRepo.GetByCode(code)
	if err != nil || drawing == nil {
		return nil, fmt.Errorf("drawing %s: %w", code, ErrNotFound)
	}
	return drawing, nil
}

// UpdateDrawing rewrites content and images, owner or admin only.
func (s *DrawingService) UpdateDrawing(ctx context.Context, user *models.User, code, content string, files []Upload) (*models.Drawing, error) {
	drawing, err := s.drawingRepo.GetByCode(code)
	if err != nil || drawing == nil {
		return nil, fmt.Errorf("drawing %s: %w", code, ErrNotFound)
	}
	if !AuthorizeOwnerOrAdmin(user, drawing.AuthorID) {
		return nil, fmt.Errorf("update drawing %s: %w", code, ErrForbidden)
	}

	var images []models.Image
	for _, file := range files {
		url, err := s.store.Upload(ctx, file.Filename, file.ContentType, file.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to upload image %s: %w", file.Filename, err)
		}
		images = append(images, models.Image{URL: url})
	}

	drawing.Content = content
	if err := s.drawingRepo.Update(drawing); err != nil {
		return nil, fmt.Errorf("failed to update drawing %s: %w", code, err)
	}
	if err := s.drawingRepo.ReplaceImages(drawing.ID, images); err != nil {
		return nil, fmt.Errorf("failed to replace images of drawing %s: %w", code, err)
	}
	drawing.Images = images
	return drawing, nil
}

// DeleteDrawing soft deletes a drawing. Existence is checked before
// ownership.
func (s *DrawingService) DeleteDrawing(user *models.User, code string) error {
	drawing, err := s.drawingRepo.GetByCode(code)
	if err != nil || drawing == nil {
		return fmt.Errorf("drawing %s: %w", code, ErrNotFound)
	}
	if !AuthorizeOwnerOrAdmin(user, drawing.AuthorID) {
		return fmt.Errorf("delete drawing %s: %w", code, ErrForbidden)
	}
	if err := s.drawingRepo.SoftDelete(drawing.ID); err != nil {
		return fmt.Errorf("failed to delete drawing %s: %w", code, err)
	}
	return nil
}

func (s *DrawingService) publishActivity(event string, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishActivity(event, payload); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", event, err)
	}
}
