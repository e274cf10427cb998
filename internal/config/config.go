package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultAPIBaseURL = "https://taskapp-backend-1-ryqr.onrender.com"

var validLanguages = map[string]bool{
	"en": true,
	"fr": true,
}

type Config struct {
	APIBaseURL string
	// APIBaseURLSet is false when the base URL fell back to the default.
	APIBaseURLSet   bool
	StorePath       string
	Language        string
	LogLevel        string
	BulkConcurrency int
	DevServer       DevServerConfig
}

type DevServerConfig struct {
	Port string
	// DBPath is the backend's SQLite database; ":memory:" keeps nothing.
	DBPath           string
	JWTSecret        string
	TokenTTL         time.Duration
	ReminderInterval time.Duration
}

func (c Config) ParseLogLevel() slog.Level {
	return ParseLogLevel(c.LogLevel)
}

func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return fmt.Errorf("invalid TASKAPP_API_BASE_URL %q: %w", c.APIBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid TASKAPP_API_BASE_URL %q: scheme must be http or https", c.APIBaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid TASKAPP_API_BASE_URL %q: host is required", c.APIBaseURL)
	}
	if !validLanguages[c.Language] {
		return fmt.Errorf("invalid TASKAPP_LANG %q: must be one of en, fr", c.Language)
	}
	if c.BulkConcurrency < 1 {
		return fmt.Errorf("invalid TASKAPP_BULK_CONCURRENCY %d: must be at least 1", c.BulkConcurrency)
	}
	if c.StorePath == "" {
		return fmt.Errorf("TASKAPP_STORE_PATH must not be empty")
	}
	return nil
}

func (d DevServerConfig) Validate() error {
	if _, err := strconv.Atoi(d.Port); err != nil {
		return fmt.Errorf("invalid DEV_SERVER_PORT %q: %w", d.Port, err)
	}
	if d.DBPath == "" {
		return fmt.Errorf("DEV_DB_PATH must not be empty")
	}
	if len(d.JWTSecret) < 16 {
		return fmt.Errorf("DEV_JWT_SECRET must be at least 16 bytes")
	}
	if d.TokenTTL <= 0 {
		return fmt.Errorf("DEV_TOKEN_TTL must be positive")
	}
	if d.ReminderInterval <= 0 {
		return fmt.Errorf("DEV_REMINDER_INTERVAL must be positive")
	}
	return nil
}

// Load reads .env from the working directory when present, then the
// environment. Existing environment variables win over .env entries.
func Load() Config {
	_ = godotenv.Load(".env")

	baseURL := os.Getenv("TASKAPP_API_BASE_URL")
	cfg := Config{
		APIBaseURL:      strings.TrimRight(baseURL, "/"),
		APIBaseURLSet:   baseURL != "",
		StorePath:       envOrDefault("TASKAPP_STORE_PATH", defaultStorePath()),
		Language:        strings.ToLower(envOrDefault("TASKAPP_LANG", "en")),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		BulkConcurrency: intOrDefault("TASKAPP_BULK_CONCURRENCY", 4),
		DevServer: DevServerConfig{
			Port:             envOrDefault("DEV_SERVER_PORT", "8080"),
			DBPath:           envOrDefault("DEV_DB_PATH", ":memory:"),
			JWTSecret:        envOrDefault("DEV_JWT_SECRET", "taskapp-dev-secret-change-me"),
			TokenTTL:         durationOrDefault("DEV_TOKEN_TTL", 24*time.Hour),
			ReminderInterval: durationOrDefault("DEV_REMINDER_INTERVAL", time.Minute),
		},
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	return cfg
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "taskapp-state.db")
	}
	return filepath.Join(home, ".config", "taskapp", "state.db")
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func intOrDefault(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return n
}

func durationOrDefault(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
