package services

import (
	"context"
	"fmt"
	"log"

	"geugeu/internal/models"
	"geugeu/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles signup and profile management.
type UserService struct {
	userRepo repositories.UserRepository
	store    ImageStore
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, store ImageStore) *UserService {
	return &UserService{
		userRepo: userRepo,
		store:    store,
	}
}

// Signup registers a local account. Emails of soft-deleted accounts stay
// burned: they cannot be reused to resurrect history under a new identity.
func (s *UserService) Signup(email, nickname, password string) (*models.User, error) {
	if existing, err := s.userRepo.GetByEmailAny(email); err == nil && existing != nil {
		if existing.DeletedAt.Valid {
			return nil, fmt.Errorf("cannot sign up with this email: %w", ErrAlreadyExists)
		}
		return nil, fmt.Errorf("user already exists: %w", ErrAlreadyExists)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		Nickname:     nickname,
		Password:     string(hashedPassword),
		IsAdmin:      false,
		AuthProvider: models.AuthProviderLocal,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// UpdateProfile changes the user's nickname.
func (s *UserService) UpdateProfile(user *models.User, nickname string) (*models.User, error) {
	user.Nickname = nickname
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", user.Code, err)
	}
	return user, nil
}

// UpdateProfileImage stores the uploaded file and points the profile at it.
func (s *UserService) UpdateProfileImage(ctx context.Context, user *models.User, file Upload) (*models.User, error) {
	url, err := s.store.Upload(ctx, file.Filename, file.ContentType, file.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to upload profile image: %w", err)
	}
	user.ProfileImageURL = url
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", user.Code, err)
	}
	return user, nil
}

// Delete soft deletes the account. Posts, drawings and comments authored by
// the user stay in place.
func (s *UserService) Delete(user *models.User) error {
	if err := s.userRepo.SoftDelete(user.ID); err != nil {
		return fmt.Errorf("failed to delete user %s: %w", user.Code, err)
	}
	log.Printf("User %s deleted their account", user.Code)
	return nil
}
