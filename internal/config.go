package internal

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	Port     int
	LogLevel string

	// Backend REST API
	APIBaseURL string        // Base URL of the SweetDive backend (e.g. http://localhost:8000/api)
	APITimeout time.Duration // Per-request budget for upstream calls

	// Session cookie
	SessionSecret string // Key used to authenticate and encrypt the session cookie
	SessionName   string // Cookie name holding the backend token + cached user

	// CSRF protection (gorilla/csrf)
	CSRFSecret string

	// Rows per page on resource screens. Must match the backend's page size,
	// which is what the total-page arithmetic divides by.
	PageSize int

	TemplatesDir string

	// Metrics endpoint authentication
	// If both are empty, the /metrics endpoint will be unprotected (not recommended)
	MetricsUsername string
	MetricsPassword string
}

func NewConfig() (*Config, error) {
	// Load .env file if it exists (ignored in production)
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		APITimeout: getEnvDuration("API_TIMEOUT", 10*time.Second),

		SessionName: getEnv("SESSION_NAME", "sweetdive_session"),

		PageSize: getEnvInt("PAGE_SIZE", 10),

		TemplatesDir: getEnv("TEMPLATES_DIR", "web/templates"),

		MetricsUsername: getEnv("METRICS_USERNAME", ""),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),
	}

	// Required
	cfg.APIBaseURL = os.Getenv("API_BASE_URL")
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL is required")
	}

	cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}

	cfg.CSRFSecret = os.Getenv("CSRF_SECRET")
	if cfg.CSRFSecret == "" {
		return nil, fmt.Errorf("CSRF_SECRET is required")
	}
	if len(cfg.CSRFSecret) != 32 {
		return nil, fmt.Errorf("CSRF_SECRET must be exactly 32 bytes, got %d", len(cfg.CSRFSecret))
	}

	if cfg.PageSize < 1 {
		return nil, fmt.Errorf("PAGE_SIZE must be positive, got: %d", cfg.PageSize)
	}

	return cfg, nil
}

// IsDevelopment reports whether the app runs with development defaults
// (text logs, template hot-reload, insecure cookies).
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
