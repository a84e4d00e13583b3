package repositories

import (
	"fmt"

	"geugeu/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCommentRepository is a GORM implementation of CommentRepository.
type GORMCommentRepository struct {
	db *gorm.DB
}

// NewGORMCommentRepository creates a new instance of GORMCommentRepository.
func NewGORMCommentRepository(db *gorm.DB) *GORMCommentRepository {
	return &GORMCommentRepository{
		db: db,
	}
}

// Create creates a new comment in the database.
func (r *GORMCommentRepository) Create(comment *models.Comment) error {
	if comment.Code == "" {
		comment.Code = uuid.New().String()
	}
	if err := r.db.Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// GetByCode retrieves a live comment by its public code, with its author.
func (r *GORMCommentRepository) GetByCode(code string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Preload("Author").First(&comment, "code = ?", code).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("comment with code %s not found", code)
		}
		return nil, fmt.Errorf("failed to get comment by code %s: %w", code, err)
	}
	return &comment, nil
}

// ListForPost returns the post's live top-level comments, oldest first.
func (r *GORMCommentRepository) ListForPost(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("Author").
		Where("post_id = ? AND parent_id IS NULL", postID).
		Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments for post %d: %w", postID, err)
	}
	return comments, nil
}

// ListForDrawing returns the drawing's live top-level comments, oldest first.
func (r *GORMCommentRepository) ListForDrawing(drawingID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("Author").
		Where("drawing_id = ? AND parent_id IS NULL", drawingID).
		Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments for drawing %d: %w", drawingID, err)
	}
	return comments, nil
}

// Update updates an existing comment in the database.
func (r *GORMCommentRepository) Update(comment *models.Comment) error {
	res := r.db.Omit("Author").Save(comment)
	if res.Error != nil {
		return fmt.Errorf("failed to update comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("comment with ID %d not found for update", comment.ID)
	}
	return nil
}

// SoftDelete marks the comment as deleted without removing the row.
func (r *GORMCommentRepository) SoftDelete(id uint) error {
	res := r.db.Delete(&models.Comment{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("comment with ID %d not found for deletion", id)
	}
	return nil
}
