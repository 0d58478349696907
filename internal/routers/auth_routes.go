package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/Abhishekjc19/fluentia/internal/handlers"
	"github.com/Abhishekjc19/fluentia/internal/middleware"
	"github.com/Abhishekjc19/fluentia/internal/models"
)

func AuthRoutes(r *chi.Mux, authHandler *handlers.AuthHandler) {
	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.ValidateRequest[*models.SignupRequest]()).
			Post("/signup", authHandler.SignupHandler) // Account creation
		r.With(middleware.ValidateRequest[*models.LoginRequest]()).
			Post("/login", authHandler.LoginHandler) // Credential check
		r.Post("/logout", authHandler.LogoutHandler) // Stateless no-op
	})
}
