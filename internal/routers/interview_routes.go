package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/Abhishekjc19/fluentia/internal/handlers"
	"github.com/Abhishekjc19/fluentia/internal/middleware"
)

func InterviewRoutes(r *chi.Mux, interviewHandler *handlers.InterviewHandler, jwtSecret string) {
	r.Route("/api/interviews", func(r chi.Router) {
		r.Use(middleware.RequireAuth(jwtSecret))
		r.Post("/start", interviewHandler.StartHandler)          // New session
		r.Post("/answer", interviewHandler.AnswerHandler)        // Record and score an answer
		r.Post("/{id}/complete", interviewHandler.CompleteHandler) // Terminal transition
		r.Get("/{id}", interviewHandler.GetHandler)              // Single interview, nested
		r.Get("/", interviewHandler.ListHandler)                 // History, newest first
	})
}
