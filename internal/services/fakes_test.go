package services_test

import (
	"context"

	"daily-diet-backend/internal/models"
	"daily-diet-backend/internal/repository"
)

// In-memory stand-ins for the pgx repositories. They mirror the scoping
// behavior of the SQL: writes match on id AND owner.

type fakeUserRepo struct {
	users map[string]*models.User

	// blindEmailCheck makes EmailExists report false regardless of stored
	// rows, simulating a registration racing past the pre-check.
	blindEmailCheck bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	if f.blindEmailCheck {
		return false, nil
	}
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) UpdateImage(ctx context.Context, userID, image string) error {
	user, ok := f.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	user.Image = &image
	return nil
}

type fakeMealRepo struct {
	meals map[string]*models.Meal
	order []string
}

func newFakeMealRepo() *fakeMealRepo {
	return &fakeMealRepo{meals: make(map[string]*models.Meal)}
}

func (f *fakeMealRepo) Create(ctx context.Context, meal *models.Meal) error {
	stored := *meal
	f.meals[meal.ID] = &stored
	f.order = append(f.order, meal.ID)
	return nil
}

func (f *fakeMealRepo) GetByID(ctx context.Context, id string) (*models.Meal, error) {
	meal, ok := f.meals[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *meal
	return &copied, nil
}

func (f *fakeMealRepo) GetByIDAndUser(ctx context.Context, id, userID string) ([]*models.Meal, error) {
	meal, ok := f.meals[id]
	if !ok || meal.UserID != userID {
		return nil, nil
	}
	copied := *meal
	return []*models.Meal{&copied}, nil
}

func (f *fakeMealRepo) ListByUser(ctx context.Context, userID string) ([]*models.Meal, error) {
	var meals []*models.Meal
	for _, id := range f.order {
		if meal := f.meals[id]; meal.UserID == userID {
			copied := *meal
			meals = append(meals, &copied)
		}
	}
	return meals, nil
}

func (f *fakeMealRepo) Update(ctx context.Context, meal *models.Meal) error {
	stored, ok := f.meals[meal.ID]
	if !ok || stored.UserID != meal.UserID {
		return repository.ErrNotFound
	}
	stored.Title = meal.Title
	stored.Description = meal.Description
	stored.Date = meal.Date
	stored.Time = meal.Time
	stored.OnDiet = meal.OnDiet
	return nil
}

func (f *fakeMealRepo) Delete(ctx context.Context, id, userID string) error {
	stored, ok := f.meals[id]
	if !ok || stored.UserID != userID {
		return repository.ErrNotFound
	}
	delete(f.meals, id)
	for i, mealID := range f.order {
		if mealID == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeMealRepo) CountByDiet(ctx context.Context, userID string) (total, in, out int, err error) {
	for _, meal := range f.meals {
		if meal.UserID != userID {
			continue
		}
		total++
		if meal.OnDiet {
			in++
		} else {
			out++
		}
	}
	return total, in, out, nil
}
