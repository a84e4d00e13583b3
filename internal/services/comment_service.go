package services

import (
	"fmt"
	"log"

	"geugeu/internal/models"
	"geugeu/internal/repositories"
)

// CommentService handles threaded comments on posts and drawings.
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
	drawingRepo repositories.DrawingRepository
	publisher   ActivityPublisher
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, drawingRepo repositories.DrawingRepository, publisher ActivityPublisher) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		drawingRepo: drawingRepo,
		publisher:   publisher,
	}
}

// CreatePostComment adds a comment (or a reply, when parentCode is set) to
// a post.
func (s *CommentService) CreatePostComment(user *models.User, postCode, content, parentCode string) (*models.Comment, error) {
	post, err := s.postRepo.GetByCode(postCode)
	if err != nil || post == nil {
		return nil, fmt.Errorf("post %s: %w", postCode, ErrNotFound)
	}
	parentID, err := s.resolveParent(parentCode)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		AuthorID: user.ID,
		PostID:   &post.ID,
		ParentID: parentID,
		Content:  content,
		Author:   *user,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.publishActivity("comment.created", map[string]interface{}{
		"commentCode": comment.Code,
		"postCode":    post.Code,
		"authorCode":  user.Code,
	})
	return comment, nil
}

// GetPostComments lists a post's top-level comments.
func (s *CommentService) GetPostComments(postCode string) ([]models.Comment, error) {
	post, err := s.postRepo.GetByCode(postCode)
	if err != nil || post == nil {
		return nil, fmt.Errorf("post %s: %w", postCode, ErrNotFound)
	}
	comments, err := s.commentRepo.ListForPost(post.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments of post %s: %w", postCode, err)
	}
	return comments, nil
}

// GetPostComment retrieves one comment of a post.
func (s *CommentService) GetPostComment(postCode, commentCode string) (*models.Comment, error) {
	post, err := s.postRepo.GetByCode(postCode)
	if err != nil || post == nil {
		return nil, fmt.Errorf("post %s: %w", postCode, ErrNotFound)
	}
	return s.getComment(commentCode)
}

// UpdatePostComment rewrites a comment's content, owner or admin only.
func (s *CommentService) UpdatePostComment(user *models.User, postCode, commentCode, content string) (*models.Comment, error) {
	post, err := s.postRepo.GetByCode(postCode)
	if err != nil || post == nil {
		return nil, fmt.Errorf("post %s: %w", postCode, ErrNotFound)
	}
	return s.updateComment(user, commentCode, content)
}

// DeletePostComment soft deletes a comment, owner or admin only.
func (s *CommentService) DeletePostComment(user *models.User, postCode, commentCode string) error {
	post, err := s.postRepo.GetByCode(postCode)
	if err != nil || post == nil {
		return fmt.Errorf("post %s: %w", postCode, ErrNotFound)
	}
	return s.deleteComment(user, commentCode)
}

// CreateDrawingComment adds a comment (or a reply) to a drawing.
func (s *CommentService) CreateDrawingComment(user *models.User, drawingCode, content, parentCode string) (*models.Comment, error) {
	drawing, err := s.drawingRepo.GetByCode(drawingCode)
	if err != nil || drawing == nil {
		return nil, fmt.Errorf("drawing %s: %w", drawingCode, ErrNotFound)
	}
	parentID, err := s.resolveParent(parentCode)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		AuthorID:  user.ID,
		DrawingID: &drawing.ID,
		ParentID:  parentID,
		Content:   content,
		Author:    *user,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.publishActivity("comment.created", map[string]interface{}{
		"commentCode": comment.Code,
		"drawingCode": drawing.Code,
		"authorCode":  user.Code,
	})
	return comment, nil
}

// GetDrawingComments lists a drawing's top-level comments.
func (s *CommentService) GetDrawingComments(drawingCode string) ([]models.Comment, error) {
	drawing, err := s.drawingRepo.GetByCode(drawingCode)
	if err != nil || drawing == nil {
		return nil, fmt.Errorf("drawing %s: %w", drawingCode, ErrNotFound)
	}
	comments, err := s.commentRepo.ListForDrawing(drawing.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments of drawing %s: %w", drawingCode, err)
	}
	return comments, nil
}

// GetDrawingComment retrieves one comment of a drawing.
func (s *CommentService) GetDrawingComment(drawingCode, commentCode string) (*models.Comment, error) {
	drawing, err := s.drawingRepo.GetByCode(drawingCode)
	if err != nil || drawing == nil {
		return nil, fmt.Errorf("drawing %s: %w", drawingCode, ErrNotFound)
	}
	return s.getComment(commentCode)
}

// UpdateDrawingComment rewrites a comment's content, owner or admin only.
func (s *CommentService) UpdateDrawingComment(user *models.User, drawingCode, commentCode, content string) (*models.Comment, error) {
	drawing, err := s.drawingRepo.GetByCode(drawingCode)
	if err != nil || drawing == nil {
		return nil, fmt.Errorf("drawing %s: %w", drawingCode, ErrNotFound)
	}
	return s.updateComment(user, commentCode, content)
}

// DeleteDrawingComment soft deletes a comment, owner or admin only.
func (s *CommentService) DeleteDrawingComment(user *models.User, drawingCode, commentCode string) error {
	drawing, err := s.drawingRepo.GetByCode(drawingCode)
	if err != nil || drawing == nil {
		return fmt.Errorf("drawing %s: %w", drawingCode, ErrNotFound)
	}
	return s.deleteComment(user, commentCode)
}

// resolveParent maps an optional parent code to its internal ID. A parent
// that no longer exists makes the whole request invalid, not a 404: the
// target resource itself was found.
func (s *CommentService) resolveParent(parentCode string) (*uint, error) {
	if parentCode == "" {
		return nil, nil
	}
	parent, err := s.commentRepo.GetByCode(parentCode)
	if err != nil || parent == nil {
		return nil, fmt.Errorf("invalid parent code: %w", ErrInvalidInput)
	}
	return &parent.ID, nil
}

func (s *CommentService) getComment(code string) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByCode(code)
	if err != nil || comment == nil {
		return nil, fmt.Errorf("comment %s: %w", code, ErrNotFound)
	}
	return comment, nil
}

func (s *CommentService) updateComment(user *models.User, code, content string) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByCode(code)
	if err != nil || comment == nil {
		return nil, fmt.Errorf("comment %s: %w", code, ErrNotFound)
	}
	if !AuthorizeOwnerOrAdmin(user, comment.AuthorID) {
		return nil, fmt.Errorf("update comment %s: %w", code, ErrForbidden)
	}
	comment.Content = content
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, fmt.Errorf("failed to update comment %s: %w", code, err)
	}
	return comment, nil
}

func (s *CommentService) deleteComment(user *models.User, code string) error {
	comment, err := s.commentRepo.GetByCode(code)
	if err != nil || comment == nil {
		return fmt.Errorf("comment %s: %w", code, ErrNotFound)
	}
	if !AuthorizeOwnerOrAdmin(user, comment.AuthorID) {
		return fmt.Errorf("delete comment %s: %w", code, ErrForbidden)
	}
	if err := s.commentRepo.SoftDelete(comment.ID); err != nil {
		return fmt.Errorf("failed to delete comment %s: %w", code, err)
	}
	return nil
}

func (s *CommentService) publishActivity(event string, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishActivity(event, payload); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", event, err)
	}
}
