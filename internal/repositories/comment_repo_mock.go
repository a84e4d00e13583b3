package repositories

import (
	"fmt"
	"sort"
	"sync"

	"geugeu/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MockCommentRepository is an in-memory implementation of CommentRepository.
type MockCommentRepository struct {
	comments map[uint]models.Comment
	nextID   uint
	mu       sync.RWMutex
}

// NewMockCommentRepository creates a new instance of MockCommentRepository.
func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{
		comments: make(map[uint]models.Comment),
		nextID:   1,
	}
}

// Create adds a new comment.
func (r *MockCommentRepository) Create(comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if comment.Code == "" {
		comment.Code = uuid.New().String()
	}
	if comment.ID == 0 {
		comment.ID = r.nextID
		r.nextID++
	}
	r.comments[comment.ID] = *comment
	return nil
}

// GetByCode returns a live comment by public code.
func (r *MockCommentRepository) GetByCode(code string) (*models.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, cm := range r.comments {
		if cm.Code == code && !cm.DeletedAt.Valid {
			comment := cm
			return &comment, nil
		}
	}
	return nil, fmt.Errorf("comment with code %s not found", code)
}

// ListForPost returns the top-level live comments of a post, oldest first.
func (r *MockCommentRepository) ListForPost(postID uint) ([]models.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []models.Comment
	for _, cm := range r.comments {
		if cm.PostID != nil && *cm.PostID == postID && cm.ParentID == nil && !cm.DeletedAt.Valid {
			result = append(result, cm)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// ListForDrawing returns the top-level live comments of a drawing, oldest
// first.
func (r *MockCommentRepository) ListForDrawing(drawingID uint) ([]models.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []models.Comment
	for _, cm := range r.comments {
		if cm.DrawingID != nil && *cm.DrawingID == drawingID && cm.ParentID == nil && !cm.DeletedAt.Valid {
			result = append(result, cm)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Update replaces an existing comment.
func (r *MockCommentRepository) Update(comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.comments[comment.ID]; !ok {
		return fmt.Errorf("comment with ID %d not found for update", comment.ID)
	}
	r.comments[comment.ID] = *comment
	return nil
}

// SoftDelete marks a comment as deleted.
func (r *MockCommentRepository) SoftDelete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cm, ok := r.comments[id]
	if !ok || cm.DeletedAt.Valid {
		return fmt.Errorf("comment with ID %d not found for deletion", id)
	}
	cm.DeletedAt = gorm.DeletedAt{Time: nowFunc(), Valid: true}
	r.comments[id] = cm
	return nil
}
