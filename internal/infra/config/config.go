package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	TelegramToken     string
	DatabaseURL       string // optional; flat-file profile store is used when empty
	DataDir           string // directory with per-region schedule JSON files
	UsersFile         string // flat-file profile store path
	CheckInterval     time.Duration
	ScrapeInterval    time.Duration
	UpstreamURLFormat string // optional; printf format with one %s for the region code
	LogLevel          string
	Environment       string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	cfg.DataDir = os.Getenv("DATA_DIR")
	if cfg.DataDir == "" {
		cfg.DataDir = "parser/data"
	}

	cfg.UsersFile = os.Getenv("USERS_FILE")
	if cfg.UsersFile == "" {
		cfg.UsersFile = "users.json"
	}

	checkSec, err := intEnv("CHECK_INTERVAL_SEC", 300)
	if err != nil {
		return nil, err
	}
	cfg.CheckInterval = time.Duration(checkSec) * time.Second

	scrapeSec, err := intEnv("SCRAPE_INTERVAL_SEC", 7200)
	if err != nil {
		return nil, err
	}
	cfg.ScrapeInterval = time.Duration(scrapeSec) * time.Second

	cfg.UpstreamURLFormat = os.Getenv("UPSTREAM_URL_FORMAT")

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	return cfg, nil
}

func intEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", key, n)
	}
	return n, nil
}
