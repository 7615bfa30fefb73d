package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"daily-diet-backend/internal/models"
	"daily-diet-backend/internal/repository"

	"github.com/google/uuid"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateImage(ctx context.Context, userID, image string) error
}

// UserService handles user-related business logic
type UserService struct {
	userRepo UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates a new user. Emails must be unique; the pre-check can race
// with a concurrent registration, so the unique index violation maps to the
// same conflict error.
func (s *UserService) Register(ctx context.Context, firstName, lastName, email string, image *string) (*models.User, error) {
	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	user := &models.User{
		ID:        uuid.New().String(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Image:     image,
		CreatedAt: time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetByID resolves a user by the identifier callers send in the
// Authorization header.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
