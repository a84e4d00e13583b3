package repositories

import (
	"fmt"

	"geugeu/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMPostRepository is a GORM implementation of PostRepository.
type GORMPostRepository struct {
	db *gorm.DB
}

// NewGORMPostRepository creates a new instance of GORMPostRepository.
func NewGORMPostRepository(db *gorm.DB) *GORMPostRepository {
	return &GORMPostRepository{
		db: db,
	}
}

// Create creates a post together with its images in one transaction.
func (r *GORMPostRepository) Create(post *models.Post) error {
	if post.Code == "" {
		post.Code = uuid.New().String()
	}
	for i := range post.Images {
		if post.Images[i].Code == "" {
			post.Images[i].Code = uuid.New().String()
		}
	}
	if err := r.db.Create(post).Error; err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// GetByCode retrieves a live post by its public code, with author and images.
func (r *GORMPostRepository) GetByCode(code string) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Author").Preload("Images").
		First(&post, "code = ?", code).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("post with code %s not found", code)
		}
		return nil, fmt.Errorf("failed to get post by code %s: %w", code, err)
	}
	return &post, nil
}

// List returns one page of live posts, newest first, plus the total count.
func (r *GORMPostRepository) List(filter PostFilter) ([]models.Post, int64, error) {
	query := r.db.Model(&models.Post{})
	if filter.AuthorCode != "" {
		query = query.
			Joins("JOIN users ON users.id = posts.author_id").
			Where("users.code = ?", filter.AuthorCode)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	var posts []models.Post
	offset := (filter.Page - 1) * filter.PageSize
	err := query.Preload("Author").Preload("Images").
		Order("posts.id DESC").
		Offset(offset).Limit(filter.PageSize).
		Find(&posts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, count, nil
}

// Update updates an existing post in the database.
func (r *GORMPostRepository) Update(post *models.Post) error {
	res := r.db.Omit("Author", "Images").Save(post)
	if res.Error != nil {
		return fmt.Errorf("failed to update post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("post with ID %d not found for update", post.ID)
	}
	return nil
}

// ReplaceImages soft deletes the post's current images and attaches new ones.
func (r *GORMPostRepository) ReplaceImages(postID uint, images []models.Image) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Image{}, "post_id = ?", postID).Error; err != nil {
			return fmt.Errorf("failed to delete post images: %w", err)
		}
		for i := range images {
			images[i].PostID = &postID
			if images[i].Code == "" {
				images[i].Code = uuid.New().String()
			}
		}
		if len(images) > 0 {
			if err := tx.Create(&images).Error; err != nil {
				return fmt.Errorf("failed to create post images: %w", err)
			}
		}
		return nil
	})
}

// SoftDelete marks the post as deleted without removing the row.
func (r *GORMPostRepository) SoftDelete(id uint) error {
	res := r.db.Delete(&models.Post{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("post with ID %d not found for deletion", id)
	}
	return nil
}
