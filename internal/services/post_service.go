package services

import (
	"context"
	"fmt"
	"log"

	"geugeu/internal/models"
	"geugeu/internal/repositories"
)

// PostService handles business logic related to posts.
type PostService struct {
	postRepo  repositories.PostRepository
	store     ImageStore
	publisher ActivityPublisher
}

// NewPostService creates a new PostService.
func NewPostService(postRepo repositories.PostRepository, store ImageStore, publisher ActivityPublisher) *PostService {
	return &PostService{
		postRepo:  postRepo,
		store:     store,
		publisher: publisher,
	}
}

// CreatePost stores the post and its uploaded images, then publishes a
// post.created activity event.
func (s *PostService) CreatePost(ctx context.Context, user *models.User, title, content string, files []Upload) (*models.Post, error) {
	images, err := s.uploadImages(ctx, files)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		AuthorID: user.ID,
		Title:    title,
		Content:  content,
		Author:   *user,
		Images:   images,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.publishActivity("post.created", map[string]interface{}{
		"postCode":   post.Code,
		"authorCode": user.Code,
		"title":      post.Title,
	})
	return post, nil
}

// GetPosts returns one page of posts plus the total count.
func (s *PostService) GetPosts(filter repositories.PostFilter) ([]models.Post, int64, error) {
	return s.postRepo.List(filter)
}

// GetPost retrieves a single post by its public code.
func (s *PostService) GetPost(code string) (*models.Post, error) {
	post, err := s.postRepo.GetByCode(code)
	if err != nil || post == nil {
		return nil, fmt.Errorf("post %s: %w", code, ErrNotFound)
	}
	return post, nil
}

// UpdatePost rewrites title, content and images. The existence check runs
// before the ownership check so an unauthorized caller cannot tell live
// posts from deleted ones.
func (s *PostService) UpdatePost(ctx context.Context, user *models.User, code, title, content string, files []Upload) (*models.Post, error) {
	post, err := s.postRepo.GetByCode(code)
	if err != nil || post == nil {
		return nil, fmt.Errorf("post %s: %w", code, ErrNotFound)
	}
	if !AuthorizeOwnerOrAdmin(user, post.AuthorID) {
		return nil, fmt.Errorf("update post %s: %w", code, ErrForbidden)
	}

	images, err := s.uploadImages(ctx, files)
	if err != nil {
		return nil, err
	}

	post.Title = title
	post.Content = content
	if err := s.postRepo.Update(post); err != nil {
		return nil, fmt.Errorf("failed to update post %s: %w", code, err)
	}
	if err := s.postRepo.ReplaceImages(post.ID, images); err != nil {
		return nil, fmt.Errorf("failed to replace images of post %s: %w", code, err)
	}
	post.Images = images
	return post, nil
}

// DeletePost soft deletes a post. Existence is checked before ownership.
func (s *PostService) DeletePost(user *models.User, code string) error {
	post, err := s.postRepo.GetByCode(code)
	if err != nil || post == nil {
		return fmt.Errorf("post %s: %w", code, ErrNotFound)
	}
	if !AuthorizeOwnerOrAdmin(user, post.AuthorID) {
		return fmt.Errorf("delete post %s: %w", code, ErrForbidden)
	}
	if err := s.postRepo.SoftDelete(post.ID); err != nil {
		return fmt.Errorf("failed to delete post %s: %w", code, err)
	}
	return nil
}

func (s *PostService) uploadImages(ctx context.Context, files []Upload) ([]models.Image, error) {
	var images []models.Image
	for _, file := range files {
		url, err := s.store.Upload(ctx, file.Filename, file.ContentType, file.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to upload image %s: %w", file.Filename, err)
		}
		images = append(images, models.Image{URL: url})
	}
	return images, nil
}

// publishActivity sends an activity event, best effort. A broker outage
// never fails the request.
func (s *PostService) publishActivity(event string, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishActivity(event, payload); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", event, err)
	}
}
