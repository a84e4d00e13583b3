package repositories

import "geugeu/internal/models"

// InterestRepository defines the interface for interest (like) data access.
type InterestRepository interface {
	Create(interest *models.Interest) error
	GetByUserAndPost(userID, postID uint) (*models.Interest, error)
	ListByPost(postID uint, page, pageSize int) ([]models.Interest, int64, error)
	ListByUser(userID uint, page, pageSize int) ([]models.Interest, int64, error)
	SoftDelete(id uint) error
}
