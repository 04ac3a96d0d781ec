package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvAPIURL  = "CODEXPLAIN_API_URL"
	EnvTimeout = "CODEXPLAIN_TIMEOUT"
	EnvLocale  = "CODEXPLAIN_LOCALE"
	EnvHistory = "CODEXPLAIN_HISTORY"
)

// ApplyEnv loads the given .env files (".env" when none are named) without
// overriding variables already set, then applies CODEXPLAIN_* overrides to
// cfg. Missing .env files are ignored.
func ApplyEnv(cfg *Config, envFiles ...string) error {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading env file: %w", err)
	}

	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		cfg.API.Timeout = d
	}
	if v := os.Getenv(EnvLocale); v != "" {
		cfg.UI.Locale = v
	}
	if v := os.Getenv(EnvHistory); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvHistory, err)
		}
		cfg.History.Enabled = enabled
	}
	return nil
}
