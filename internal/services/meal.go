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

// MealRepository defines persistence operations for meals.
type MealRepository interface {
	Create(ctx context.Context, meal *models.Meal) error
	GetByID(ctx context.Context, id string) (*models.Meal, error)
	GetByIDAndUser(ctx context.Context, id, userID string) ([]*models.Meal, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Meal, error)
	Update(ctx context.Context, meal *models.Meal) error
	Delete(ctx context.Context, id, userID string) error
	CountByDiet(ctx context.Context, userID string) (total, in, out int, err error)
}

// MealUpdate carries the optional fields of a partial update. Nil fields are
// left unchanged.
type MealUpdate struct {
	Title       *string
	Description *string
	Date        *string
	Time        *string
	OnDiet      *bool
}

// MealService handles meal-related business logic
type MealService struct {
	mealRepo MealRepository
}

// NewMealService creates a new meal service
func NewMealService(mealRepo MealRepository) *MealService {
	return &MealService{mealRepo: mealRepo}
}

// Create logs a new meal for a user
func (s *MealService) Create(ctx context.Context, userID, title string, description *string, date, mealTime string, onDiet bool) (*models.Meal, error) {
	meal := &models.Meal{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Date:        date,
		Time:        mealTime,
		OnDiet:      onDiet,
		CreatedAt:   time.Now(),
	}

	if err := s.mealRepo.Create(ctx, meal); err != nil {
		return nil, fmt.Errorf("failed to create meal: %w", err)
	}

	return meal, nil
}

// Update applies a partial update to a meal. The meal must exist by id; the
// write itself is scoped by id and owner, so a meal belonging to a different
// user also comes back as not found.
func (s *MealService) Update(ctx context.Context, userID, mealID string, update MealUpdate) (*models.Meal, error) {
	existing, err := s.mealRepo.GetByID(ctx, mealID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, fmt.Errorf("failed to get meal: %w", err)
	}

	merged := *existing
	merged.UserID = userID
	if update.Title != nil {
		merged.Title = *update.Title
	}
	if update.Description != nil {
		merged.Description = update.Description
	}
	if update.Date != nil {
		merged.Date = *update.Date
	}
	if update.Time != nil {
		merged.Time = *update.Time
	}
	if update.OnDiet != nil {
		merged.OnDiet = *update.OnDiet
	}

	if err := s.mealRepo.Update(ctx, &merged); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, fmt.Errorf("failed to update meal: %w", err)
	}

	return &merged, nil
}

// Delete removes a meal owned by the caller
func (s *MealService) Delete(ctx context.Context, userID, mealID string) error {
	if err := s.mealRepo.Delete(ctx, mealID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMealNotFound
		}
		return fmt.Errorf("failed to delete meal: %w", err)
	}
	return nil
}

// List returns all meals owned by the caller, in storage order
func (s *MealService) List(ctx context.Context, userID string) ([]*models.Meal, error) {
	meals, err := s.mealRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	if meals == nil {
		meals = []*models.Meal{}
	}
	return meals, nil
}

// GetByID returns the meals matching id and owner. The contract is
// collection-shaped: a miss is an empty list, not an error.
func (s *MealService) GetByID(ctx context.Context, userID, mealID string) ([]*models.Meal, error) {
	meals, err := s.mealRepo.GetByIDAndUser(ctx, mealID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get meal: %w", err)
	}
	if meals == nil {
		meals = []*models.Meal{}
	}
	return meals, nil
}

// Summary computes the caller's diet adherence counts. A user with no meals
// gets ErrNoMeals rather than a zero percentage.
func (s *MealService) Summary(ctx context.Context, userID string) (*models.Summary, error) {
	total, in, out, err := s.mealRepo.CountByDiet(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count meals: %w", err)
	}
	if total == 0 {
		return nil, ErrNoMeals
	}

	return &models.Summary{
		TotalMeals:            total,
		TotalMealsIn:          in,
		TotalMealsOut:         out,
		RoundedMealsInPercent: fmt.Sprintf("%.2f", float64(in)/float64(total)*100),
	}, nil
}
