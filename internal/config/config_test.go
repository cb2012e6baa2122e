package config

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); !errors.Is(err, ErrMissingJWTSecret) {
		t.Fatalf("want ErrMissingJWTSecret, got %v", err)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "abc")
	t.Setenv("APP_ENV", "production")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("DB_APPLY_SCHEMA", "true")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.IsProduction() {
		t.Error("expected production")
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Errorf("origins = %v", cfg.CORSAllowedOrigins)
	}
	if len(cfg.KafkaBrokers) != 2 {
		t.Errorf("brokers = %v", cfg.KafkaBrokers)
	}
	if !cfg.ApplySchema {
		t.Error("expected ApplySchema")
	}
	if !strings.Contains(cfg.DSN(), "host=db") {
		t.Errorf("DSN = %q", cfg.DSN())
	}
}

func TestDSNPrefersURL(t *testing.T) {
	cfg := Config{DatabaseURL: "postgres://u:p@h/db"}
	if cfg.DSN() != "postgres://u:p@h/db" {
		t.Fatalf("DSN = %q", cfg.DSN())
	}
}
