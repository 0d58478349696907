package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/Abhishekjc19/fluentia/internal/handlers"
)

func HealthRoutes(router *chi.Mux, healthHandler *handlers.HealthHandler) {
	router.Get("/health", healthHandler.HealthzHandler)
	router.Get("/api/health", healthHandler.ReadyzHandler)
}
