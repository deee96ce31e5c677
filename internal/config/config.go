package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the server reads from the environment.
type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"trip-planner"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Path string `envconfig:"DB_PATH" default:"./data/trips.db"`
	}

	Auth struct {
		// JWTSecret signs trip access tokens. The default exists so the
		// server runs out of the box; set a real secret in production.
		JWTSecret string        `envconfig:"JWT_SECRET" default:"dev-secret-change-me"`
		TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
	}

	Log struct {
		Level string `envconfig:"LOG_LEVEL" default:"info"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}
}

// Addr returns the listen address, e.g. ":8080".
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
