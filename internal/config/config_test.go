package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.TokenTTL != 7*24*time.Hour {
		t.Fatalf("expected default token ttl, got %s", cfg.TokenTTL)
	}
	if cfg.OTPTTL != 10*time.Minute {
		t.Fatalf("expected default otp ttl, got %s", cfg.OTPTTL)
	}
	if !cfg.IsDev() {
		t.Fatal("expected development environment")
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("APP_ENV", "development")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when JWT_SECRET is missing")
	}
}

func TestLoadRequiresStoresOutsideDev(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when DATABASE_URL is missing in production")
	}

	t.Setenv("DATABASE_URL", "postgres://localhost/hirely")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when REDIS_URL is missing in production")
	}
}

func TestLoadParsesDurations(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_ENV", "development")
	t.Setenv("TOKEN_TTL", "24h")
	t.Setenv("OTP_TTL", "5m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("expected 24h token ttl, got %s", cfg.TokenTTL)
	}
	if cfg.OTPTTL != 5*time.Minute {
		t.Fatalf("expected 5m otp ttl, got %s", cfg.OTPTTL)
	}
}

func TestLoadRejectsInvalidDuration(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_ENV", "development")
	t.Setenv("TOKEN_TTL", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid TOKEN_TTL")
	}
}
