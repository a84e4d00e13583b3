package repositories

import (
	"fmt"
	"sort"
	"sync"

	"geugeu/internal/models"

	"gorm.io/gorm"
)

// MockInterestRepository is an in-memory implementation of InterestRepository.
type MockInterestRepository struct {
	interests map[uint]models.Interest
	nextID    uint
	mu        sync.RWMutex
}

// NewMockInterestRepository creates a new instance of MockInterestRepository.
func NewMockInterestRepository() *MockInterestRepository {
	return &MockInterestRepository{
		interests: make(map[uint]models.Interest),
		nextID:    1,
	}
}

// Create adds a new interest.
func (r *MockInterestRepository) Create(interest *models.Interest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if interest.ID == 0 {
		interest.ID = r.nextID
		r.nextID++
	}
	interest.CreatedAt = nowFunc()
	r.interests[interest.ID] = *interest
	return nil
}

// GetByUserAndPost returns the live interest of a user in a post.
func (r *MockInterestRepository) GetByUserAndPost(userID, postID uint) (*models.Interest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, in := range r.interests {
		if in.UserID == userID && in.PostID == postID && !in.DeletedAt.Valid {
			interest := in
			return &interest, nil
		}
	}
	return nil, fmt.Errorf("interest of user %d in post %d not found", userID, postID)
}

// ListByPost returns one page of live interests in a post, newest first.
// A page size of zero returns the count only.
func (r *MockInterestRepository) ListByPost(postID uint, page, pageSize int) ([]models.Interest, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []models.Interest
	for _, in := range r.interests {
		if in.PostID == postID && !in.DeletedAt.Valid {
			all = append(all, in)
		}
	}
	return pageInterests(all, page, pageSize)
}

// ListByUser returns one page of a user's live interests, newest first.
func (r *MockInterestRepository) ListByUser(userID uint, page, pageSize int) ([]models.Interest, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []models.Interest
	for _, in := range r.interests {
		if in.UserID == userID && !in.DeletedAt.Valid {
			all = append(all, in)
		}
	}
	return pageInterests(all, page, pageSize)
}

// SoftDelete marks an interest as deleted.
func (r *MockInterestRepository) SoftDelete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	in, ok := r.interests[id]
	if !ok || in.DeletedAt.Valid {
		return fmt.Errorf("interest with ID %d not found for deletion", id)
	}
	in.DeletedAt = gorm.DeletedAt{Time: nowFunc(), Valid: true}
	r.interests[id] = in
	return nil
}

func pageInterests(all []models.Interest, page, pageSize int) ([]models.Interest, int64, error) {
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	count := int64(len(all))
	if pageSize == 0 {
		return nil, count, nil
	}
	offset := (page - 1) * pageSize
	if offset >= len(all) {
		return nil, count, nil
	}
	end := offset + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], count, nil
}
