package middleware

import (
	"context"
	"net/http"

	"daily-diet-backend/internal/services"
)

type contextKey string

const userIDKey contextKey = "user_id"

// Identity gates requests on the Authorization header. The header value is
// used verbatim as the caller's user id and must resolve to a registered
// user; the handler chain is never reached otherwise. The resolved id is
// stored in the request context.
func Identity(userService *services.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := r.Header.Get("Authorization")
			if userID == "" {
				respondError(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			user, err := userService.GetByID(r.Context(), userID)
			if err != nil {
				respondError(w, "Unknown user", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts the resolved user ID from context
func GetUserID(ctx context.Context) string {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
