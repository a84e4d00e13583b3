package repositories

import "geugeu/internal/models"

// CommentRepository defines the interface for comment data access. Listing
// only returns top-level comments; replies hang off their parent.
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByCode(code string) (*models.Comment, error)
	ListForPost(postID uint) ([]models.Comment, error)
	ListForDrawing(drawingID uint) ([]models.Comment, error)
	Update(comment *models.Comment) error
	SoftDelete(id uint) error
}
