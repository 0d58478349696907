package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/Abhishekjc19/fluentia/internal/handlers"
	"github.com/Abhishekjc19/fluentia/internal/middleware"
)

func UserRoutes(r *chi.Mux, userHandler *handlers.UserHandler, jwtSecret string) {
	r.Route("/api/users", func(r chi.Router) {
		r.Use(middleware.RequireAuth(jwtSecret))
		r.Get("/me", userHandler.MeHandler)       // Current user profile
		r.Get("/stats", userHandler.StatsHandler) // Interview statistics
	})
}
