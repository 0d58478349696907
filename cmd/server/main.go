package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Abhishekjc19/fluentia/internal/config"
	"github.com/Abhishekjc19/fluentia/internal/events"
	"github.com/Abhishekjc19/fluentia/internal/handlers"
	"github.com/Abhishekjc19/fluentia/internal/interview"
	"github.com/Abhishekjc19/fluentia/internal/jobs"
	"github.com/Abhishekjc19/fluentia/internal/llm"
	_ "github.com/Abhishekjc19/fluentia/internal/llm/gemini"
	"github.com/Abhishekjc19/fluentia/internal/metrics"
	"github.com/Abhishekjc19/fluentia/internal/models"
	"github.com/Abhishekjc19/fluentia/internal/prompts"
	"github.com/Abhishekjc19/fluentia/internal/repositories"
	"github.com/Abhishekjc19/fluentia/internal/resume"
	"github.com/Abhishekjc19/fluentia/internal/routers"
	"github.com/Abhishekjc19/fluentia/internal/storage"
	"github.com/Abhishekjc19/fluentia/internal/storage/gcs"
	"github.com/Abhishekjc19/fluentia/internal/utils"
)

func registerRoutes(router *chi.Mux, cfg *config.Config, authHandler *handlers.AuthHandler, userHandler *handlers.UserHandler, interviewHandler *handlers.InterviewHandler, healthHandler *handlers.HealthHandler) {
	routers.HealthRoutes(router, healthHandler)
	routers.AuthRoutes(router, authHandler)
	routers.UserRoutes(router, userHandler, cfg.JWTSecret)
	routers.InterviewRoutes(router, interviewHandler, cfg.JWTSecret)
	router.Handle("/metrics", metrics.Handler())

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.JSONError(w, http.StatusNotFound, "Route not found")
	})
}

func initDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Interview{}, &models.Question{}, &models.Answer{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

func main() {
	// local development convenience, a missing .env is fine
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("provider", cfg.Provider))

	db, err := initDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}

	userRepo := &repositories.UserRepository{DB: db}
	interviewRepo := &repositories.InterviewRepository{DB: db}
	answerRepo := &repositories.AnswerRepository{DB: db}

	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		logger.Fatal("Failed to initialize prompt manager", zap.Error(err))
	}

	aiProvider, err := llm.NewProvider(cfg.Provider)
	if err != nil {
		logger.Fatal("Failed to initialize AI provider", zap.Error(err))
	}

	// object storage for recordings, optional
	var store storage.Store
	if cfg.GCSBucket != "" {
		gcsStore, err := gcs.NewStore(context.Background())
		if err != nil {
			logger.Error("Failed to initialize object storage, recordings disabled", zap.Error(err))
		} else {
			store = gcsStore
			defer gcsStore.Close()
		}
	}

	// completion events, optional
	var publisher events.Publisher
	if cfg.RedisAddr != "" {
		redisPublisher := events.NewRedisPublisher(cfg.RedisAddr, logger)
		publisher = redisPublisher
		defer redisPublisher.Close()
	}

	sessionManager := interview.NewSessionManager(interviewRepo, answerRepo, aiProvider, promptManager, store, publisher, logger)

	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret, logger)
	userHandler := handlers.NewUserHandler(userRepo, sessionManager, logger)
	interviewHandler := handlers.NewInterviewHandler(sessionManager, resume.NewPlainTextExtractor(), logger)
	healthHandler := handlers.NewHealthHandler(aiProvider, promptManager, cfg)

	var janitor *jobs.RecordingJanitor
	if store != nil && cfg.JanitorSchedule != "" {
		janitor = jobs.NewRecordingJanitor(store, interviewRepo, answerRepo, &jobs.JanitorConfig{
			Schedule:  cfg.JanitorSchedule,
			Retention: cfg.JanitorRetention,
			Enabled:   true,
		}, logger)
		if err := janitor.Start(); err != nil {
			logger.Error("Failed to start recording janitor", zap.Error(err))
		}
	}

	router := chi.NewRouter()

	// cors middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.Use(chimiddleware.RequestID, chimiddleware.RealIP, chimiddleware.Logger, chimiddleware.Recoverer, chimiddleware.Timeout(60*time.Second))
	router.Use(metrics.Middleware())

	registerRoutes(router, cfg, authHandler, userHandler, interviewHandler, healthHandler)

	serverAddr := ":" + cfg.Port

	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Interview service starting", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("Interview service shutting down...")

	if janitor != nil {
		janitor.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("Interview service exited")
}
