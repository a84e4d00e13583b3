package repositories

import (
	"fmt"
	"sort"
	"sync"

	"geugeu/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MockDrawingRepository is an in-memory implementation of DrawingRepository.
type MockDrawingRepository struct {
	drawings map[uint]models.Drawing
	nextID   uint
	mu       sync.RWMutex
}

// NewMockDrawingRepository creates a new instance of MockDrawingRepository.
func NewMockDrawingRepository() *MockDrawingRepository {
	return &MockDrawingRepository{
		drawings: make(map[uint]models.Drawing),
		nextID:   1,
	}
}

// Create adds a new drawing.
func (r *MockDrawingRepository) Create(drawing *models.Drawing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if drawing.Code == "" {
		drawing.Code = uuid.New().String()
	}
	if drawing.ID == 0 {
		drawing.ID = r.nextID
		r.nextID++
	}
	for i := range drawing.Images {
		if drawing.Images[i].Code == "" {
			drawing.Images[i].Code = uuid.New().String()
		}
	}
	r.drawings[drawing.ID] = *drawing
	return nil
}

// GetByCode returns a live drawing by public code.
func (r *MockDrawingRepository) GetByCode(code string) (*models.Drawing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.drawings {
		if d.Code == code && !d.DeletedAt.Valid {
			drawing := d
			return &drawing, nil
		}
	}
	return nil, fmt.Errorf("drawing with code %s not found", code)
}

// ExistsForPost reports whether the post already has a live drawing.
func (r *MockDrawingRepository) ExistsForPost(postID uint) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.drawings {
		if d.PostID == postID && !d.DeletedAt.Valid {
			return true, nil
		}
	}
	return false, nil
}

// List returns one page of live drawings, newest first.
func (r *MockDrawingRepository) List(filter DrawingFilter) ([]models.Drawing, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []models.Drawing
	for _, d := range r.drawings {
		if d.DeletedAt.Valid {
			continue
		}
		if filter.PostCode != "" && d.Post.Code != filter.PostCode {
			continue
		}
		if filter.AuthorCode != "" && d.Author.Code != filter.AuthorCode {
			continue
		}
		all = append(all, d)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	count := int64(len(all))
	offset := (filter.Page - 1) * filter.PageSize
	if offset >= len(all) {
		return nil, count, nil
	}
	end := offset + filter.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], count, nil
}

// Update replaces an existing drawing.
func (r *MockDrawingRepository) Update(drawing *models.Drawing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.drawings[drawing.ID]; !ok {
		return fmt.Errorf("drawing with ID %d not found for update", drawing.ID)
	}
	r.drawings[drawing.ID] = *drawing
	return nil
}

// ReplaceImages swaps the drawing's image set.
func (r *MockDrawingRepository) ReplaceImages(drawingID uint, images []models.Image) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.drawings[drawingID]
	if !ok {
		return fmt.Errorf("drawing with ID %d not found", drawingID)
	}
	for i := range images {
		images[i].DrawingID = &drawingID
		if images[i].Code == "" {
			images[i].Code = uuid.New().String()
		}
	}
	d.Images = images
	r.drawings[drawingID] = d
	return nil
}

// SoftDelete marks a drawing as deleted.
func (r *MockDrawingRepository) SoftDelete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.drawings[id]
	if !ok || d.DeletedAt.Valid {
		return fmt.Errorf("drawing with ID %d not found for deletion", id)
	}
	d.DeletedAt = gorm.DeletedAt{Time: nowFunc(), Valid: true}
	r.drawings[id] = d
	return nil
}
