package repositories

import (
	"fmt"

	"geugeu/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMDrawingRepository is a GORM implementation of DrawingRepository.
type GORMDrawingRepository struct {
	db *gorm.DB
}

// NewGORMDrawingRepository creates a new instance of GORMDrawingRepository.
func NewGORMDrawingRepository(db *gorm.DB) *GORMDrawingRepository {
	return &GORMDrawingRepository{
		db: db,
	}
}

// Create creates a drawing together with its images in one transaction.
func (r *GORMDrawingRepository) Create(drawing *models.Drawing) error {
	if drawing.Code == "" {
		drawing.Code = uuid.New().String()
	}
	for i := range drawing.Images {
		if drawing.Images[i].Code == "" {
			drawing.Images[i].Code = uuid.New().String()
		}
	}
	if err := r.db.Create(drawing).Error; err != nil {
		return fmt.Errorf("failed to create drawing: %w", err)
	}
	return nil
}

// GetByCode retrieves a live drawing by its public code, with post, author
// and images.
func (r *GORMDrawingRepository) GetByCode(code string) (*models.Drawing, error) {
	var drawing models.Drawing
	err := r.db.Preload("Post").Preload("Author").Preload("Images").
		First(&drawing, "code = ?", code).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("drawing with code %s not found", code)
		}
		return nil, fmt.Errorf("failed to get drawing by code %s: %w", code, err)
	}
	return &drawing, nil
}

// ExistsForPost reports whether the post already has a live drawing.
func (r *GORMDrawingRepository) ExistsForPost(postID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Drawing{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check drawing for post %d: %w", postID, err)
	}
	return count > 0, nil
}

// List returns one page of live drawings, newest first, plus the total count.
func (r *GORMDrawingRepository) List(filter DrawingFilter) ([]models.Drawing, int64, error) {
	query := r.db.Model(&models.Drawing{})
	if filter.PostCode != "" {
		query = query.
			Joins("JOIN posts ON posts.id = drawings.post_id").
			Where("posts.code = ?", filter.PostCode)
	}
	if filter.AuthorCode != "" {
		query = query.
			Joins("JOIN users ON users.id = drawings.author_id").
			Where("users.code = ?", filter.AuthorCode)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count drawings: %w", err)
	}

	var drawings []models.Drawing
	offset := (filter.Page - 1) * filter.PageSize
	err := query.Preload("Post").Preload("Author").Preload("Images").
		Order("drawings.id DESC").
		Offset(offset).Limit(filter.PageSize).
		Find(&drawings).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list drawings: %w", err)
	}
	return drawings, count, nil
}

// Update updates an existing drawing in the database.
func (r *GORMDrawingRepository) Update(drawing *models.Drawing) error {
	res := r.db.Omit("Post", "Author", "Images").Save(drawing)
	if res.Error != nil {
		return fmt.Errorf("failed to update drawing: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("drawing with ID %d not found for update", drawing.ID)
	}
	return nil
}

// ReplaceImages soft deletes the drawing's current images and attaches new
// ones.
func (r *GORMDrawingRepository) ReplaceImages(drawingID uint, images []models.Image) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Image{}, "drawing_id = ?", drawingID).Error; err != nil {
			return fmt.Errorf("failed to delete drawing images: %w", err)
		}
		for i := range images {
			images[i].DrawingID = &drawingID
			if images[i].Code == "" {
				images[i].Code = uuid.New().String()
			}
		}
		if len(images) > 0 {
			if err := tx.Create(&images).Error; err != nil {
				return fmt.Errorf("failed to create drawing images: %w", err)
			}
		}
		return nil
	})
}

// SoftDelete marks the drawing as deleted without removing the row.
func (r *GORMDrawingRepository) SoftDelete(id uint) error {
	res := r.db.Delete(&models.Drawing{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete drawing: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("drawing with ID %d not found for deletion", id)
	}
	return nil
}
