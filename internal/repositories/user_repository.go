package repositories

import "geugeu/internal/models"

// UserRepository defines the interface for user data access. Lookups only
// return live rows; GetByEmailAny also sees soft-deleted accounts so signup
// and OAuth login can refuse emails that belonged to a deleted user.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByEmailAny(email string) (*models.User, error)
	GetByCode(code string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	Update(user *models.User) error
	SoftDelete(id uint) error
}
