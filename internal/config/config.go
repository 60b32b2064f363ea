// Package config resolves runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devSecret = "zeabis-dev-secret-change-me"

type Config struct {
	Addr            string
	DBPath          string
	JWTSecret       string
	TokenTTL        time.Duration
	LogLevel        slog.Level
	LogUseCases     bool
	OverdueSchedule string
	APIURL          string
	TokenFile       string
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		Addr:            ":3001",
		DBPath:          filepath.Join(home, ".zeabis", "zeabis.db"),
		JWTSecret:       devSecret,
		TokenTTL:        24 * time.Hour,
		LogLevel:        slog.LevelInfo,
		OverdueSchedule: "0 2 * * *",
		APIURL:          "http://localhost:3001/api",
		TokenFile:       filepath.Join(home, ".zeabis", "token"),
	}
}

// Load reads .env files (missing files are ignored, existing environment
// wins) and then the environment.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv applies ZEABIS_* variables over DefaultConfig.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("ZEABIS_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("ZEABIS_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("ZEABIS_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("ZEABIS_TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid ZEABIS_TOKEN_TTL %q", v)
		}
		cfg.TokenTTL = d
	}
	if v := os.Getenv("ZEABIS_LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("invalid ZEABIS_LOG_LEVEL %q: %w", v, err)
		}
	}
	if v := os.Getenv("ZEABIS_LOG_USE_CASES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ZEABIS_LOG_USE_CASES %q: %w", v, err)
		}
		cfg.LogUseCases = b
	}
	if v := os.Getenv("ZEABIS_OVERDUE_SCHEDULE"); v != "" {
		cfg.OverdueSchedule = v
	}
	if v := os.Getenv("ZEABIS_API_URL"); v != "" {
		cfg.APIURL = v
	} else if v := os.Getenv("VITE_API_URL"); v != "" {
		cfg.APIURL = v
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	if v := os.Getenv("ZEABIS_TOKEN_FILE"); v != "" {
		cfg.TokenFile = v
	}
	return cfg, nil
}

// InsecureSecret reports whether the built-in development secret is in use.
func (c Config) InsecureSecret() bool {
	return c.JWTSecret == devSecret
}

// Logger builds the process logger: text to stderr at the configured level.
func (c Config) Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.LogLevel}))
}
