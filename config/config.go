// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every variable (COFFEE_RANGE_API_TOKEN, ...).
const EnvPrefix = "COFFEE_RANGE"

// Config is the full runtime configuration.
type Config struct {
	API  APIConfig
	Log  LogConfig
	Game GameConfig
}

// APIConfig points at the storefront API.
type APIConfig struct {
	BaseURL string        `envconfig:"API_BASE_URL" default:"https://api.dev.terminal.shop"`
	Token   string        `envconfig:"API_TOKEN" required:"true"`
	Timeout time.Duration `envconfig:"API_TIMEOUT" default:"15s"`
}

// LogConfig controls the debug log file. The terminal itself belongs to
// the game, so logs never go to stdout.
type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
	Dir   string `envconfig:"LOG_DIR" default:"logs"`
}

// GameConfig tunes the session.
type GameConfig struct {
	FPS   int  `envconfig:"FPS" default:"30"`
	Sound bool `envconfig:"SOUND" default:"true"`
}

// Load reads .env (if present) and then the environment.
func Load() (*Config, error) {
	// Missing .env is the normal production case.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.API.Token == "" {
		return nil, fmt.Errorf("COFFEE_RANGE_API_TOKEN is required")
	}
	if cfg.Game.FPS <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %d", cfg.Game.FPS)
	}
	return &cfg, nil
}
