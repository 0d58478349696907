package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/Abhishekjc19/fluentia/internal/utils"
)

const (
	userIDKey    contextKey = "auth_user_id"
	userEmailKey contextKey = "auth_user_email"
)

// RequireAuth verifies the Bearer token and stores the caller's identity in
// the request context. A missing token is 401, a bad one is 403.
func RequireAuth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := utils.VerifyToken(r, jwtSecret)
			if err != nil {
				if errors.Is(err, utils.ErrMissingAuthHeader) {
					utils.JSONError(w, http.StatusUnauthorized, "Access token required")
					return
				}
				utils.JSONError(w, http.StatusForbidden, "Invalid or expired token")
				return
			}

			userID, err := utils.GetUserIDFromClaims(claims)
			if err != nil {
				utils.JSONError(w, http.StatusForbidden, "Invalid or expired token")
				return
			}
			email, _ := claims["email"].(string)

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = context.WithValue(ctx, userEmailKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID returns the authenticated user's ID from the request context.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	id, ok := r.Context().Value(userIDKey).(uuid.UUID)
	return id, ok
}

// GetUserEmail returns the authenticated user's email from the request
// context.
func GetUserEmail(r *http.Request) (string, bool) {
	email, ok := r.Context().Value(userEmailKey).(string)
	return email, ok
}
