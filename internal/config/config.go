package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config is the application configuration loaded from the environment.
type Config struct {
	Port        string
	Env         string
	CORSOrigins []string
	JWTSecret   string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	Provider string

	GCSBucket string
	RedisAddr string

	JanitorSchedule  string
	JanitorRetention time.Duration
}

// LoadConfig reads configuration from environment variables, applying
// development defaults where it is safe to do so.
func LoadConfig() (*Config, error) {
	config := &Config{
		Port:        getEnvOrDefault("PORT", "8080"),
		Env:         getEnvOrDefault("ENV", "development"),
		CORSOrigins: splitCSV(getEnvOrDefault("CORS_ORIGINS", "http://localhost:3000")),
		JWTSecret:   getEnvOrDefault("JWT_SECRET", ""),

		DBHost:     getEnvOrDefault("DB_HOST", "localhost"),
		DBPort:     getEnvOrDefault("DB_PORT", "5432"),
		DBUser:     getEnvOrDefault("DB_USER", "postgres"),
		DBPassword: getEnvOrDefault("DB_PASSWORD", "postgres"),
		DBName:     getEnvOrDefault("DB_NAME", "fluentia"),
		DBSSLMode:  getEnvOrDefault("DB_SSLMODE", "disable"),

		Provider: getEnvOrDefault("AI_PROVIDER", "gemini"),

		GCSBucket: os.Getenv("GCS_BUCKET"),
		RedisAddr: os.Getenv("REDIS_ADDR"),

		JanitorSchedule: os.Getenv("JANITOR_SCHEDULE"),
	}

	retention, err := time.ParseDuration(getEnvOrDefault("JANITOR_RETENTION", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JANITOR_RETENTION: %w", err)
	}
	config.JanitorRetention = retention

	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Provider != "gemini" {
		return errors.New("unsupported AI provider: " + config.Provider + ". Currently supported: gemini")
	}
	if config.JWTSecret == "" {
		if config.Env != "development" {
			return errors.New("JWT_SECRET is required outside development")
		}
		config.JWTSecret = "dev"
	}
	return nil
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func splitCSV(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
