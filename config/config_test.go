package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/ErlanBelekov/grocery-api/config"
)

const testSecret = "config-test-secret-at-least-32-chars"

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/grocery_db")
	t.Setenv("JWT_SECRET", testSecret)
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Env != "local" || cfg.Port != "3000" {
		t.Errorf("env/port = %q/%q", cfg.Env, cfg.Port)
	}
	if cfg.AccessTokenTTL != 24*time.Hour || cfg.RefreshTokenTTL != 7*24*time.Hour {
		t.Errorf("ttls = %v/%v", cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("bcrypt cost = %d", cfg.BcryptCost)
	}
	if cfg.DBMaxConns != 20 || cfg.DBAcquireTimeout != 2*time.Second {
		t.Errorf("pool = %d/%v", cfg.DBMaxConns, cfg.DBAcquireTimeout)
	}
	if !cfg.AutoMigrate {
		t.Error("auto migrate should default to true")
	}
	if cfg.SlogLevel() != slog.LevelInfo {
		t.Errorf("level = %v", cfg.SlogLevel())
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/grocery_db")
	t.Setenv("JWT_SECRET", "")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error without JWT_SECRET")
	}
}

func TestLoad_ShortSecret(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_SECRET", "short")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for short JWT_SECRET")
	}
}

func TestLoad_RefreshMustOutliveAccess(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_ACCESS_TTL", "48h")
	t.Setenv("JWT_REFRESH_TTL", "24h")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error when refresh TTL <= access TTL")
	}
}

func TestLoad_ProductionRequiresResend(t *testing.T) {
	setRequired(t)
	t.Setenv("ENV", "production")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error without RESEND_* in production")
	}

	t.Setenv("RESEND_API_KEY", "re_test")
	t.Setenv("RESEND_FROM", "groceries@example.com")
	if _, err := config.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
}

func TestSlogLevel(t *testing.T) {
	setRequired(t)
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("level = %v, want debug", cfg.SlogLevel())
	}
}
