package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("port = %q", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("env = %q", cfg.Env)
	}
	if cfg.Provider != "gemini" {
		t.Errorf("provider = %q", cfg.Provider)
	}
	if cfg.JWTSecret == "" {
		t.Errorf("development secret fallback missing")
	}
	if cfg.JanitorRetention != 24*time.Hour {
		t.Errorf("retention = %v", cfg.JanitorRetention)
	}
}

func TestLoadConfigRequiresSecretOutsideDevelopment(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadConfig(); err == nil {
		t.Errorf("production without JWT_SECRET should fail")
	}

	t.Setenv("JWT_SECRET", "prod-secret")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.JWTSecret != "prod-secret" {
		t.Errorf("secret = %q", cfg.JWTSecret)
	}
}

func TestLoadConfigRejectsUnknownProvider(t *testing.T) {
	t.Setenv("AI_PROVIDER", "gpt9000")
	if _, err := LoadConfig(); err == nil {
		t.Errorf("unknown provider should fail")
	}
}

func TestCORSOriginsSplit(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test ,")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "http://a.test" || cfg.CORSOrigins[1] != "http://b.test" {
		t.Errorf("origins = %v", cfg.CORSOrigins)
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "n", DBSSLMode: "disable",
	}
	want := "host=db port=5432 user=u password=p dbname=n sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
