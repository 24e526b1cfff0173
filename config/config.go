package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	ctxlog "github.com/ErlanBelekov/grocery-api/internal/log"
	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Env      string `env:"ENV"       envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT"      envDefault:"3000"  validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"  validate:"oneof=debug info warn error"`

	DatabaseURL      string        `env:"DATABASE_URL,required" validate:"required"`
	DBMaxConns       int32         `env:"DB_MAX_CONNS"          envDefault:"20"   validate:"min=1,max=200"`
	DBAcquireTimeout time.Duration `env:"DB_ACQUIRE_TIMEOUT"    envDefault:"2s"   validate:"min=100ms"`
	AutoMigrate      bool          `env:"AUTO_MIGRATE"          envDefault:"true"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	JWTSecret       string        `env:"JWT_SECRET,required" validate:"required,min=32"`
	AccessTokenTTL  time.Duration `env:"JWT_ACCESS_TTL"      envDefault:"24h"  validate:"min=1m"`
	RefreshTokenTTL time.Duration `env:"JWT_REFRESH_TTL"     envDefault:"168h" validate:"gtfield=AccessTokenTTL"`
	BcryptCost      int           `env:"BCRYPT_COST"         envDefault:"12"   validate:"min=4,max=31"`

	ResendAPIKey string `env:"RESEND_API_KEY" validate:"required_if=Env production,required_if=Env staging"`
	ResendFrom   string `env:"RESEND_FROM"    validate:"required_if=Env production,required_if=Env staging"`
}

// Load reads an optional .env file, then the process environment.
// Variables already set in the environment win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) SlogLevel() slog.Level {
	return ctxlog.ParseLevel(c.LogLevel)
}
