package repository

import (
	"context"
	"errors"
	"fmt"

	"daily-diet-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MealRepository handles database operations for meals
type MealRepository struct {
	db *pgxpool.Pool
}

// NewMealRepository creates a new meal repository
func NewMealRepository(db *pgxpool.Pool) *MealRepository {
	return &MealRepository{db: db}
}

// Create creates a new meal
func (r *MealRepository) Create(ctx context.Context, meal *models.Meal) error {
	query := `
		INSERT INTO meals (id, user_id, title, description, date, time, on_diet, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		meal.ID, meal.UserID, meal.Title, meal.Description,
		meal.Date, meal.Time, meal.OnDiet, meal.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create meal: %w", err)
	}
	return nil
}

// GetByID retrieves a meal by ID alone, regardless of owner
func (r *MealRepository) GetByID(ctx context.Context, id string) (*models.Meal, error) {
	query := `
		SELECT id, user_id, title, description, date, time, on_diet, created_at
		FROM meals
		WHERE id = $1
	`
	var meal models.Meal
	err := r.db.QueryRow(ctx, query, id).Scan(
		&meal.ID, &meal.UserID, &meal.Title, &meal.Description,
		&meal.Date, &meal.Time, &meal.OnDiet, &meal.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get meal: %w", err)
	}
	return &meal, nil
}

// GetByIDAndUser retrieves the meals matching both id and owner. At most one
// row can match, but the result keeps the collection shape of the contract.
func (r *MealRepository) GetByIDAndUser(ctx context.Context, id, userID string) ([]*models.Meal, error) {
	query := `
		SELECT id, user_id, title, description, date, time, on_diet, created_at
		FROM meals
		WHERE id = $1 AND user_id = $2
	`
	return r.queryMeals(ctx, query, id, userID)
}

// ListByUser retrieves all meals owned by a user, in storage order
func (r *MealRepository) ListByUser(ctx context.Context, userID string) ([]*models.Meal, error) {
	query := `
		SELECT id, user_id, title, description, date, time, on_diet, created_at
		FROM meals
		WHERE user_id = $1
	`
	return r.queryMeals(ctx, query, userID)
}

// Update overwrites the mutable columns of a meal, scoped by id and owner
func (r *MealRepository) Update(ctx context.Context, meal *models.Meal) error {
	query := `
		UPDATE meals
		SET title = $1, description = $2, date = $3, time = $4, on_diet = $5
		WHERE id = $6 AND user_id = $7
	`
	result, err := r.db.Exec(ctx, query,
		meal.Title, meal.Description, meal.Date, meal.Time, meal.OnDiet,
		meal.ID, meal.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update meal: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a meal, scoped by id and owner
func (r *MealRepository) Delete(ctx context.Context, id, userID string) error {
	query := `DELETE FROM meals WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete meal: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByDiet returns the total, on-diet and off-diet meal counts for a user
func (r *MealRepository) CountByDiet(ctx context.Context, userID string) (total, in, out int, err error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE on_diet),
		       COUNT(*) FILTER (WHERE NOT on_diet)
		FROM meals
		WHERE user_id = $1
	`
	if err := r.db.QueryRow(ctx, query, userID).Scan(&total, &in, &out); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count meals: %w", err)
	}
	return total, in, out, nil
}

func (r *MealRepository) queryMeals(ctx context.Context, query string, args ...any) ([]*models.Meal, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get meals: %w", err)
	}
	defer rows.Close()

	var meals []*models.Meal
	for rows.Next() {
		var meal models.Meal
		err := rows.Scan(
			&meal.ID, &meal.UserID, &meal.Title, &meal.Description,
			&meal.Date, &meal.Time, &meal.OnDiet, &meal.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meal: %w", err)
		}
		meals = append(meals, &meal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating meals: %w", err)
	}

	return meals, nil
}
