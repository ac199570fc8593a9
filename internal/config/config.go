package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Supabase
	SupabaseURL            string
	SupabasePublishableKey string
	SupabaseJWTSecret      string
	SupabaseStorageBucket  string

	// Database
	DatabaseURL string

	// Admin
	AdminUserID string

	// Dashboard aggregation
	RecentPerProject int
	RecentFeedCap    int

	// Uploads
	MaxUploadSizeMB int64

	// Rate limiting (public lead forms)
	RateLimitLimit  int64
	RateLimitPeriod time.Duration

	// Server
	Port           string
	Environment    string
	BaseURL        string
	LogLevel       string
	AllowedOrigins []string
}

func Load() (*Config, error) {
	// .env is optional; fall back to process environment
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("config: no .env file, using environment variables")
	}

	cfg := &Config{
		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabasePublishableKey: getEnv("SUPABASE_PUBLISHABLE_KEY", ""),
		SupabaseJWTSecret:      getEnv("SUPABASE_JWT_SECRET", ""),
		SupabaseStorageBucket:  getEnv("SUPABASE_STORAGE_BUCKET", "project-files"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		AdminUserID: getEnv("ADMIN_USER_ID", ""),

		RecentPerProject: getEnvInt("DASHBOARD_RECENT_PER_PROJECT", 3),
		RecentFeedCap:    getEnvInt("DASHBOARD_RECENT_FEED_CAP", 8),

		MaxUploadSizeMB: int64(getEnvInt("MAX_UPLOAD_SIZE_MB", 200)),

		RateLimitLimit:  int64(getEnvInt("RATE_LIMIT_LIMIT", 10)),
		RateLimitPeriod: getEnvDuration("RATE_LIMIT_PERIOD", time.Minute),

		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		BaseURL:        getEnv("BASE_URL", "http://localhost:8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: splitAndTrim(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabasePublishableKey == "" {
		return fmt.Errorf("SUPABASE_PUBLISHABLE_KEY is required")
	}
	if c.SupabaseJWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET is required")
	}
	if c.RecentPerProject < 1 || c.RecentPerProject > 3 {
		return fmt.Errorf("DASHBOARD_RECENT_PER_PROJECT must be between 1 and 3")
	}
	if c.RecentFeedCap < 1 {
		return fmt.Errorf("DASHBOARD_RECENT_FEED_CAP must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
