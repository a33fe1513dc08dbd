// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds the settings shared by every command.
type Config struct {
	BaseURL      string        `env:"ITUNES_BASE_URL" envDefault:"https://itunes.apple.com"`
	Country      string        `env:"ITUNES_COUNTRY" envDefault:"us"`
	Pages        int           `env:"ITUNES_PAGES" envDefault:"1"`
	Concurrency  int           `env:"ITUNES_CONCURRENCY" envDefault:"0"`
	Timeout      time.Duration `env:"ITUNES_TIMEOUT" envDefault:"30s"`
	MaxRetries   int           `env:"ITUNES_MAX_RETRIES" envDefault:"2"`
	RetryWaitMin time.Duration `env:"ITUNES_RETRY_WAIT_MIN" envDefault:"500ms"`
	RetryWaitMax time.Duration `env:"ITUNES_RETRY_WAIT_MAX" envDefault:"5s"`
	StrictStatus bool          `env:"ITUNES_STRICT_STATUS" envDefault:"false"`
	RatingPolicy string        `env:"ITUNES_RATING_POLICY" envDefault:"ignore"`
	// Token is only needed for mirrors of the feed that require authentication.
	Token     string `env:"ITUNES_TOKEN"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads the given .env files (".env" when none are given) and then parses the environment.
// Missing .env files are not an error; variables already set in the environment win.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Pages < 1 {
		return Config{}, fmt.Errorf("parse config: ITUNES_PAGES must be at least 1, got %d", cfg.Pages)
	}
	return cfg, nil
}
