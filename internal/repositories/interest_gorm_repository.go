package repositories

import (
	"fmt"

	"geugeu/internal/models"

	"gorm.io/gorm"
)

// GORMInterestRepository is a GORM implementation of InterestRepository.
type GORMInterestRepository struct {
	db *gorm.DB
}

// NewGORMInterestRepository creates a new instance of GORMInterestRepository.
func NewGORMInterestRepository(db *gorm.DB) *GORMInterestRepository {
	return &GORMInterestRepository{
		db: db,
	}
}

// Create records a new interest.
func (r *GORMInterestRepository) Create(interest *models.Interest) error {
	if err := r.db.Create(interest).Error; err != nil {
		return fmt.Errorf("failed to create interest: %w", err)
	}
	return nil
}

// GetByUserAndPost retrieves the live interest a user holds on a post.
func (r *GORMInterestRepository) GetByUserAndPost(userID, postID uint) (*models.Interest, error) {
	var interest models.Interest
	err := r.db.First(&interest, "user_id = ? AND post_id = ?", userID, postID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("interest for user %d on post %d not found", userID, postID)
		}
		return nil, fmt.Errorf("failed to get interest: %w", err)
	}
	return &interest, nil
}

// ListByPost returns one page of the post's live interests, newest first,
// plus the total count. A zero page size returns the count only.
func (r *GORMInterestRepository) ListByPost(postID uint, page, pageSize int) ([]models.Interest, int64, error) {
	query := r.db.Model(&models.Interest{}).Where("post_id = ?", postID)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count interests: %w", err)
	}
	if pageSize == 0 {
		return nil, count, nil
	}

	var interests []models.Interest
	offset := (page - 1) * pageSize
	err := query.Preload("User").Preload("Post").Preload("Post.Author").
		Order("created_at DESC").
		Offset(offset).Limit(pageSize).
		Find(&interests).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list interests for post %d: %w", postID, err)
	}
	return interests, count, nil
}

// ListByUser returns one page of the user's live interests, newest first,
// plus the total count.
func (r *GORMInterestRepository) ListByUser(userID uint, page, pageSize int) ([]models.Interest, int64, error) {
	query := r.db.Model(&models.Interest{}).Where("user_id = ?", userID)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count interests: %w", err)
	}

	var interests []models.Interest
	offset := (page - 1) * pageSize
	err := query.Preload("User").Preload("Post").Preload("Post.Author").
		Order("created_at DESC").
		Offset(offset).Limit(pageSize).
		Find(&interests).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list interests for user %d: %w", userID, err)
	}
	return interests, count, nil
}

// SoftDelete marks the interest as removed without deleting the row.
func (r *GORMInterestRepository) SoftDelete(id uint) error {
	res := r.db.Delete(&models.Interest{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete interest: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("interest with ID %d not found for deletion", id)
	}
	return nil
}
