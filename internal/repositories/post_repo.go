package repositories

import "geugeu/internal/models"

// PostFilter narrows and paginates post listings.
type PostFilter struct {
	AuthorCode string
	Page       int
	PageSize   int
}

// PostRepository defines the interface for post data access. Reads preload
// the author and the post's live images.
type PostRepository interface {
	Create(post *models.Post) error
	GetByCode(code string) (*models.Post, error)
	List(filter PostFilter) ([]models.Post, int64, error)
	Update(post *models.Post) error
	ReplaceImages(postID uint, images []models.Image) error
	SoftDelete(id uint) error
}
