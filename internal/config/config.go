// Package config reads cocoon settings from the environment and optional
// .env files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFiles are loaded, when present, before the environment is parsed.
// Variables already set in the process environment win.
var DefaultEnvFiles = []string{".env", ".env.local"}

type Config struct {
	// DBPath is the SQLite file. Empty means ~/.cocoon/cocoon.db.
	DBPath string `env:"COCOON_DB"`
	// UserID is the acting user recorded as owner and audit author.
	UserID      string `env:"COCOON_USER" envDefault:"user1"`
	Locale      string `env:"COCOON_LOCALE" envDefault:"nb"`
	LogLevel    string `env:"COCOON_LOG_LEVEL" envDefault:"warn"`
	LogUseCases bool   `env:"COCOON_LOG_USE_CASES" envDefault:"false"`
	// OrgSeed optionally replaces the embedded org-chart seed used by reset.
	OrgSeed string `env:"COCOON_ORG_SEED"`
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// LoadEnvFiles loads the files that exist and returns how many did.
func LoadEnvFiles(files []string) (int, error) {
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

// Load reads DefaultEnvFiles and then the environment.
func Load() (*Config, error) {
	if _, err := LoadEnvFiles(DefaultEnvFiles); err != nil {
		return nil, fmt.Errorf("loading env files: %w", err)
	}
	return Parse()
}

// Parse reads the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".cocoon", "cocoon.db")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.UserID) == "" {
		errs = append(errs, errors.New("COCOON_USER must not be empty"))
	}
	if !validLevels[c.LogLevel] {
		errs = append(errs, fmt.Errorf("COCOON_LOG_LEVEL must be one of debug|info|warn|error, got %q", c.LogLevel))
	}
	return errors.Join(errs...)
}
