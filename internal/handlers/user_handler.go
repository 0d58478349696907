package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Abhishekjc19/fluentia/internal/middleware"
	"github.com/Abhishekjc19/fluentia/internal/models"
	"github.com/Abhishekjc19/fluentia/internal/repositories"
	"github.com/Abhishekjc19/fluentia/internal/utils"
)

// StatsService supplies aggregated interview counts for a user.
type StatsService interface {
	Stats(ctx context.Context, userID uuid.UUID) (*models.UserStats, error)
}

// UserHandler serves the authenticated user's profile and statistics.
type UserHandler struct {
	Repo   *repositories.UserRepository
	Stats  StatsService
	Logger *zap.Logger
}

func NewUserHandler(repo *repositories.UserRepository, stats StatsService, logger *zap.Logger) *UserHandler {
	return &UserHandler{Repo: repo, Stats: stats, Logger: logger}
}

// MeHandler returns the profile of the token's subject.
func (h *UserHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	user, err := h.Repo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			utils.JSONError(w, http.StatusNotFound, "User not found")
			return
		}
		h.Logger.Error("Failed to load user", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Failed to load user")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{"user": user})
}

// StatsHandler returns interview totals and the average completed score.
func (h *UserHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	stats, err := h.Stats.Stats(r.Context(), userID)
	if err != nil {
		h.Logger.Error("Failed to compute user stats", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Failed to load statistics")
		return
	}

	utils.JSON(w, http.StatusOK, stats)
}
