package repositories

import "geugeu/internal/models"

// DrawingFilter narrows and paginates drawing listings.
type DrawingFilter struct {
	PostCode   string
	AuthorCode string
	Page       int
	PageSize   int
}

// DrawingRepository defines the interface for drawing data access.
type DrawingRepository interface {
	Create(drawing *models.Drawing) error
	GetByCode(code string) (*models.Drawing, error)
	ExistsForPost(postID uint) (bool, error)
	List(filter DrawingFilter) ([]models.Drawing, int64, error)
	Update(drawing *models.Drawing) error
	ReplaceImages(drawingID uint, images []models.Image) error
	SoftDelete(id uint) error
}
