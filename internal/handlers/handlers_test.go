package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"daily-diet-backend/internal/handlers"
	"daily-diet-backend/internal/middleware"
	"daily-diet-backend/internal/models"
	"daily-diet-backend/internal/repository"
	"daily-diet-backend/internal/services"

	"github.com/go-chi/chi/v5"
)

// In-memory repositories mirroring the SQL scoping: writes match on id AND
// owner.

type fakeUserRepo struct {
	users map[string]*models.User
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

type testEnv struct {
	router   *chi.Mux
	userRepo *fakeUserRepo
	mealRepo *fakeMealRepo
}

// newTestEnv wires the router exactly like the server command does, with
// in-memory repositories underneath.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	userRepo := &fakeUserRepo{users: make(map[string]*models.User)}
	mealRepo := &fakeMealRepo{meals: make(map[string]*models.Meal)}

	userService := services.NewUserService(userRepo)
	mealService := services.NewMealService(mealRepo)
	avatarService, err := services.NewAvatarService(userRepo, "us-east-1", "diet-avatars", "test-access-key", "test-secret-key", "")
	if err != nil {
		t.Fatalf("NewAvatarService: %v", err)
	}

	userHandler := handlers.NewUserHandler(userService, avatarService)
	mealHandler := handlers.NewMealHandler(mealService)

	r := chi.NewRouter()
	r.Post("/user", userHandler.CreateUser)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(userService))
		r.Post("/user/avatar", userHandler.RequestAvatarUpload)
		r.Post("/meal", mealHandler.CreateMeal)
		r.Put("/meal/{id}", mealHandler.UpdateMeal)
		r.Delete("/meal/{id}", mealHandler.DeleteMeal)
		r.Get("/meal", mealHandler.ListMeals)
		r.Get("/meal/{id}", mealHandler.GetMeal)
		r.Get("/summary", mealHandler.GetSummary)
	})

	return &testEnv{router: r, userRepo: userRepo, mealRepo: mealRepo}
}

// seedUser registers a user directly in the fake store and returns its id.
func (e *testEnv) seedUser(t *testing.T, email string) string {
	t.Helper()
	id := "user-" + email
	e.userRepo.users[id] = &models.User{
		ID:        id,
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		CreatedAt: time.Now(),
	}
	return id
}

func (e *testEnv) do(t *testing.T, method, path, authorization string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var value T
	if err := json.Unmarshal(w.Body.Bytes(), &value); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return value
}
