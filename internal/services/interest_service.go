package services

import (
	"fmt"

	"geugeu/internal/models"
	"geugeu/internal/repositories"
)

// InterestStatus is the outcome of toggling interest on a post.
type InterestStatus struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	IsInterested bool   `json:"is_interested"`
}

// InterestList is one page of interests plus the total count. IsInterested
// is only set when the caller was authenticated.
type InterestList struct {
	Items        []models.Interest
	Count        int64
	IsInterested *bool
}

// InterestService handles interest (like) toggling and listing.
type InterestService struct {
	interestRepo repositories.InterestRepository
	postRepo     repositories.PostRepository
	userRepo     repositories.UserRepository
}

// NewInterestService creates a new InterestService.
func NewInterestService(interestRepo repositories.InterestRepository, postRepo repositories.PostRepository, userRepo repositories.UserRepository) *InterestService {
	return &InterestService{
		interestRepo: interestRepo,
		postRepo:     postRepo,
		userRepo:     userRepo,
	}
}

// Toggle flips the user's interest in a post. Removal is a soft delete, so
// toggling back on creates a fresh row.
func (s *InterestService) Toggle(user *models.User, postCode string) (*InterestStatus, error) {
	post, err := s.postRepo.GetByCode(postCode)
	if err != nil || post == nil {
		return nil, fmt.Errorf("post %s: %w", postCode, ErrNotFound)
	}

	existing, err := s.interestRepo.GetByUserAndPost(user.ID, post.ID)
	if err == nil && existing != nil {
		if err := s.interestRepo.SoftDelete(existing.ID); err != nil {
			return nil, fmt.Errorf("failed to remove interest: %w", err)
		}
		return &InterestStatus{
			Success:      true,
			Message:      "Interest removed successfully",
			IsInterested: false,
		}, nil
	}

	interest := &models.Interest{UserID: user.ID, PostID: post.ID}
	if err := s.interestRepo.Create(interest); err != nil {
		return nil, fmt.Errorf("failed to add interest: %w", err)
	}
	return &InterestStatus{
		Success:      true,
		Message:      "Interest added successfully",
		IsInterested: true,
	}, nil
}

// GetPostInterests lists who is interested in a post. With a page size of
// zero only the count (and the caller's own status) is returned. currentUser
// may be nil for anonymous callers.
func (s *InterestService) GetPostInterests(postCode string, currentUser *models.User, page, pageSize int) (*InterestList, error) {
	post, err := s.postRepo.GetByCode(postCode)
	if err != nil || post == nil {
		return nil, fmt.Errorf("post %s: %w", postCode, ErrNotFound)
	}

	items, count, err := s.interestRepo.ListByPost(post.ID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list interests of post %s: %w", postCode, err)
	}

	result := &InterestList{Items: items, Count: count}
	if currentUser != nil {
		existing, err := s.interestRepo.GetByUserAndPost(currentUser.ID, post.ID)
		interested := err == nil && existing != nil
		result.IsInterested = &interested
	}
	return result, nil
}

// GetUserInterests lists the posts a user has marked interest in.
func (s *InterestService) GetUserInterests(userCode string, page, pageSize int) (*InterestList, error) {
	user, err := s.userRepo.GetByCode(userCode)
	if err != nil || user == nil {
		return nil, fmt.Errorf("user %s: %w", userCode, ErrNotFound)
	}

	items, count, err := s.interestRepo.ListByUser(user.ID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list interests of user %s: %w", userCode, err)
	}
	return &InterestList{Items: items, Count: count}, nil
}
