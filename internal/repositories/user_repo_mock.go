package repositories

import (
	"fmt"
	"sync"

	"geugeu/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users  map[uint]models.User
	nextID uint
	mu     sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:  make(map[uint]models.User),
		nextID: 1,
	}
}

// Create adds a new user.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.Code == "" {
		user.Code = uuid.New().String()
	}
	if user.ID == 0 {
		user.ID = r.nextID
		r.nextID++
	}
	r.users[user.ID] = *user
	return nil
}

// GetByEmail returns a live user by email.
func (r *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email && !u.DeletedAt.Valid {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with email %s not found", email)
}

// GetByEmailAny returns a user by email, including soft-deleted accounts.
func (r *MockUserRepository) GetByEmailAny(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with email %s not found", email)
}

// GetByCode returns a live user by public code.
func (r *MockUserRepository) GetByCode(code string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Code == code && !u.DeletedAt.Valid {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with code %s not found", code)
}

// GetByID returns a live user by internal ID.
func (r *MockUserRepository) GetByID(id uint) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok || u.DeletedAt.Valid {
		return nil, fmt.Errorf("user with ID %d not found", id)
	}
	user := u
	return &user, nil
}

// Update replaces an existing user.
func (r *MockUserRepository) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return fmt.Errorf("user with ID %d not found for update", user.ID)
	}
	r.users[user.ID] = *user
	return nil
}

// SoftDelete marks a user as deleted.
func (r *MockUserRepository) SoftDelete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok || u.DeletedAt.Valid {
		return fmt.Errorf("user with ID %d not found for deletion", id)
	}
	u.DeletedAt = gorm.DeletedAt{Time: nowFunc(), Valid: true}
	r.users[id] = u
	return nil
}
