package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"daily-diet-backend/internal/middleware"
	"daily-diet-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService   *services.UserService
	avatarService *services.AvatarService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, avatarService *services.AvatarService) *UserHandler {
	return &UserHandler{
		userService:   userService,
		avatarService: avatarService,
	}
}

// CreateUserRequest is the registration payload
type CreateUserRequest struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Image     *string `json:"image"`
}

// Validate checks the required fields
func (req *CreateUserRequest) Validate() error {
	if req.FirstName == "" {
		return errors.New("firstName is required")
	}
	if req.LastName == "" {
		return errors.New("lastName is required")
	}
	if req.Email == "" {
		return errors.New("email is required")
	}
	return nil
}

// CreateUser handles POST /user
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.userService.Register(ctx, req.FirstName, req.LastName, req.Email, req.Image)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			respondError(w, "Email already registered", http.StatusConflict)
			return
		}
		log.Error().Err(err).Str("email", req.Email).Msg("Failed to create user")
		respondError(w, "Failed to create user", http.StatusInternalServerError)
		return
	}

	log.Info().
		Str("user_id", user.ID).
		Msg("User created")

	respondJSON(w, http.StatusOK, user)
}

// AvatarUploadRequest asks for a pre-signed avatar upload URL
type AvatarUploadRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
}

// Validate checks the required fields
func (req *AvatarUploadRequest) Validate() error {
	if req.Filename == "" {
		return errors.New("filename is required")
	}
	if req.ContentType == "" {
		return errors.New("contentType is required")
	}
	return nil
}

// RequestAvatarUpload handles POST /user/avatar
func (h *UserHandler) RequestAvatarUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req AvatarUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	upload, err := h.avatarService.RequestUpload(ctx, userID, req.Filename, req.ContentType)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to create avatar upload URL")
		respondError(w, "Failed to create upload URL", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, upload)
}
