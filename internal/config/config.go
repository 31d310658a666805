package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

const defaultBaseURL = "https://voisa-gdeug5aegkefgtbq.swedencentral-01.azurewebsites.net/api"

type Config struct {
	// Backend
	BaseURL     string
	HTTPTimeout time.Duration

	// Local state
	StatePath string

	// Logging
	Environment string
	LogLevel    string
}

// Load reads configuration from .env (if present) and the environment.
func Load() Config {
	_ = godotenv.Load(".env")

	return Config{
		BaseURL:     getenv("VOISA_API_URL", defaultBaseURL),
		HTTPTimeout: getdur("HTTP_TIMEOUT", 10*time.Second),
		StatePath:   getenv("VOICTL_STATE_PATH", defaultStatePath()),
		Environment: getenv("ENVIRONMENT", "dev"),
		LogLevel:    getenv("LOG_LEVEL", ""),
	}
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "voictl-session.json"
	}
	return filepath.Join(home, ".voictl", "session.json")
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		slog.Warn("invalid duration, using default", "key", k, "value", v, "default", def)
	}
	return def
}
