// Package config resolves client settings with precedence
// env var > config file > default. A .env file in the working
// directory is folded into the environment before resolution.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	defaultAPIURL = "http://localhost:8000"

	envAPIURL   = "TRENDLENS_API_URL"
	envTheme    = "TRENDLENS_THEME"
	envDebugLog = "TRENDLENS_DEBUG_LOG"
)

// Config holds everything the client needs at startup.
type Config struct {
	// APIURL is the base URL of the analytics API.
	APIURL string `yaml:"api_url"`
	// Theme selects the startup palette: "dark" (default) or "light".
	Theme string `yaml:"theme"`
	// DebugLog is a file path for request tracing. Empty disables it;
	// the TUI owns the terminal, so logs never go to stdout.
	DebugLog string `yaml:"debug_log"`
}

// Load resolves configuration from ~/.trendlens/config.yaml plus the
// environment. A missing config file is not an error.
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaults(), fmt.Errorf("get home dir: %w", err)
	}
	return LoadFrom(filepath.Join(home, ".trendlens", "config.yaml"))
}

// LoadFrom resolves configuration from an explicit file path plus the
// environment.
func LoadFrom(path string) (Config, error) {
	godotenv.Load() //nolint:errcheck // a .env file is optional

	cfg := defaults()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Defaults + env only.
	case err != nil:
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	default:
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if v := os.Getenv(envAPIURL); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv(envTheme); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv(envDebugLog); v != "" {
		cfg.DebugLog = v
	}

	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}
	if cfg.Theme != "light" {
		cfg.Theme = "dark"
	}
	return cfg, nil
}

func defaults() Config {
	return Config{APIURL: defaultAPIURL, Theme: "dark"}
}

// Logger builds the request-trace logger. Without a debug log path the
// logger is disabled entirely.
func (c Config) Logger() (zerolog.Logger, error) {
	if c.DebugLog == "" {
		return zerolog.Nop(), nil
	}
	f, err := os.OpenFile(c.DebugLog, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("open debug log: %w", err)
	}
	return zerolog.New(f).With().Timestamp().Logger(), nil
}
