package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Abhishekjc19/fluentia/internal/middleware"
	"github.com/Abhishekjc19/fluentia/internal/models"
	"github.com/Abhishekjc19/fluentia/internal/repositories"
	"github.com/Abhishekjc19/fluentia/internal/utils"
)

// AuthHandler manages authentication endpoints.
type AuthHandler struct {
	Repo      *repositories.UserRepository
	JWTSecret string
	Logger    *zap.Logger
}

func NewAuthHandler(repo *repositories.UserRepository, jwtSecret string, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{Repo: repo, JWTSecret: jwtSecret, Logger: logger}
}

type authResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// SignupHandler creates a user and issues a token. Runs behind
// ValidateRequest[*models.SignupRequest].
func (h *AuthHandler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.SignupRequest](r)

	if existing, err := h.Repo.GetUserByEmail(req.Email); err == nil && existing != nil {
		utils.JSONError(w, http.StatusConflict, "An account with this email already exists")
		return
	} else if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		h.Logger.Error("Failed to check for existing user", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.Logger.Error("Failed to hash password", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
	}
	if err := h.Repo.CreateUser(user); err != nil {
		h.Logger.Error("Failed to create user", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	token, err := utils.SignToken(user.ID, user.Email, h.JWTSecret)
	if err != nil {
		h.Logger.Error("Failed to sign token", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	utils.JSON(w, http.StatusCreated, authResponse{User: user, Token: token})
}

// LoginHandler checks credentials and issues a token. Runs behind
// ValidateRequest[*models.LoginRequest].
func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.LoginRequest](r)

	user, err := h.Repo.GetUserByEmail(req.Email)
	if err != nil {
		utils.JSONError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		utils.JSONError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := utils.SignToken(user.ID, user.Email, h.JWTSecret)
	if err != nil {
		h.Logger.Error("Failed to sign token", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	utils.JSON(w, http.StatusOK, authResponse{User: user, Token: token})
}

// LogoutHandler exists for client symmetry. Tokens are stateless, so there
// is nothing to revoke server side.
func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}
