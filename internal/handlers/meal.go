package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"daily-diet-backend/internal/middleware"
	"daily-diet-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MealHandler handles meal-related HTTP requests
type MealHandler struct {
	mealService *services.MealService
}

// NewMealHandler creates a new meal handler
func NewMealHandler(mealService *services.MealService) *MealHandler {
	return &MealHandler{mealService: mealService}
}

// CreateMealRequest is the meal logging payload. OnDiet is a pointer so a
// missing flag is distinguishable from false.
type CreateMealRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	OnDiet      *bool   `json:"onDiet"`
}

// Validate checks the required fields
func (req *CreateMealRequest) Validate() error {
	if req.Title == "" {
		return errors.New("title is required")
	}
	if req.Date == "" {
		return errors.New("date is required")
	}
	if req.Time == "" {
		return errors.New("time is required")
	}
	if req.OnDiet == nil {
		return errors.New("onDiet is required")
	}
	return nil
}

// UpdateMealRequest carries a partial update; every field is optional.
type UpdateMealRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	OnDiet      *bool   `json:"onDiet"`
}

// CreateMeal handles POST /meal
func (h *MealHandler) CreateMeal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req CreateMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	meal, err := h.mealService.Create(ctx, userID, req.Title, req.Description, req.Date, req.Time, *req.OnDiet)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to create meal")
		respondError(w, "Failed to create meal", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, meal)
}

// UpdateMeal handles PUT /meal/{id}
func (h *MealHandler) UpdateMeal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	mealID, ok := mealIDParam(w, r)
	if !ok {
		return
	}

	var req UpdateMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	meal, err := h.mealService.Update(ctx, userID, mealID, services.MealUpdate{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		OnDiet:      req.OnDiet,
	})
	if err != nil {
		if errors.Is(err, services.ErrMealNotFound) {
			respondError(w, "Meal not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("user_id", userID).Str("meal_id", mealID).Msg("Failed to update meal")
		respondError(w, "Failed to update meal", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, meal)
}

// DeleteMeal handles DELETE /meal/{id}
func (h *MealHandler) DeleteMeal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	mealID, ok := mealIDParam(w, r)
	if !ok {
		return
	}

	if err := h.mealService.Delete(ctx, userID, mealID); err != nil {
		if errors.Is(err, services.ErrMealNotFound) {
			respondError(w, "Meal not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("user_id", userID).Str("meal_id", mealID).Msg("Failed to delete meal")
		respondError(w, "Failed to delete meal", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// ListMeals handles GET /meal
func (h *MealHandler) ListMeals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	meals, err := h.mealService.List(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list meals")
		respondError(w, "Failed to list meals", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, meals)
}

// GetMeal handles GET /meal/{id}. The response is a collection of zero or
// one meals; a miss is an empty list, not an error.
func (h *MealHandler) GetMeal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	mealID, ok := mealIDParam(w, r)
	if !ok {
		return
	}

	meals, err := h.mealService.GetByID(ctx, userID, mealID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("meal_id", mealID).Msg("Failed to get meal")
		respondError(w, "Failed to get meal", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, meals)
}

// GetSummary handles GET /summary
func (h *MealHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	summary, err := h.mealService.Summary(ctx, userID)
	if err != nil {
		if errors.Is(err, services.ErrNoMeals) {
			respondError(w, "No meals registered", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to compute summary")
		respondError(w, "Failed to compute summary", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// mealIDParam reads and validates the {id} path parameter. It writes the
// error response itself when the value is not a UUID.
func mealIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		respondError(w, "Invalid meal id", http.StatusBadRequest)
		return "", false
	}
	return id, true
}
