package repositories

import (
	"fmt"
	"sort"
	"sync"

	"geugeu/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MockPostRepository is an in-memory implementation of PostRepository.
type MockPostRepository struct {
	posts  map[uint]models.Post
	nextID uint
	mu     sync.RWMutex
}

// NewMockPostRepository creates a new instance of MockPostRepository.
func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{
		posts:  make(map[uint]models.Post),
		nextID: 1,
	}
}

// Create adds a new post.
func (r *MockPostRepository) Create(post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if post.Code == "" {
		post.Code = uuid.New().String()
	}
	if post.ID == 0 {
		post.ID = r.nextID
		r.nextID++
	}
	for i := range post.Images {
		if post.Images[i].Code == "" {
			post.Images[i].Code = uuid.New().String()
		}
	}
	r.posts[post.ID] = *post
	return nil
}

// GetByCode returns a live post by public code.
func (r *MockPostRepository) GetByCode(code string) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.posts {
		if p.Code == code && !p.DeletedAt.Valid {
			post := p
			return &post, nil
		}
	}
	return nil, fmt.Errorf("post with code %s not found", code)
}

// List returns one page of live posts, newest first.
func (r *MockPostRepository) List(filter PostFilter) ([]models.Post, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []models.Post
	for _, p := range r.posts {
		if p.DeletedAt.Valid {
			continue
		}
		if filter.AuthorCode != "" && p.Author.Code != filter.AuthorCode {
			continue
		}
		all = append(all, p)
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

// Update replaces an existing post.
func (r *MockPostRepository) Update(post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[post.ID]; !ok {
		return fmt.Errorf("post with ID %d not found for update", post.ID)
	}
	r.posts[post.ID] = *post
	return nil
}

// ReplaceImages swaps the post's image set.
func (r *MockPostRepository) ReplaceImages(postID uint, images []models.Image) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[postID]
	if !ok {
		return fmt.Errorf("post with ID %d not found", postID)
	}
	for i := range images {
		images[i].PostID = &postID
		if images[i].Code == "" {
			images[i].Code = uuid.New().String()
		}
	}
	p.Images = images
	r.posts[postID] = p
	return nil
}

// SoftDelete marks a post as deleted.
func (r *MockPostRepository) SoftDelete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[id]
	if !ok || p.DeletedAt.Valid {
		return fmt.Errorf("post with ID %d not found for deletion", id)
	}
	p.DeletedAt = gorm.DeletedAt{Time: nowFunc(), Valid: true}
	r.posts[id] = p
	return nil
}
