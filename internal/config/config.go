package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the application
type Config struct {
	Port           string
	AllowedOrigins []string
	LogLevel       string
	Environment    string

	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32
	RedisURL    string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	CacheTTL CacheTTL
}

// CacheTTL carries the time-to-live per cache key class. Each class is
// independently configurable.
type CacheTTL struct {
	PollList    time.Duration
	PollDetail  time.Duration
	PollResults time.Duration
	Category    time.Duration
	Campaign    time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Environment:    getEnv("ENVIRONMENT", "production"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBMaxConns:  getInt32Env("DB_MAX_CONNS", 20),
		DBMinConns:  getInt32Env("DB_MIN_CONNS", 2),
		RedisURL:    getEnv("REDIS_URL", ""),

		JWTSecret:       getEnv("JWT_SECRET", ""),
		AccessTokenTTL:  getDurationEnv("ACCESS_TOKEN_TTL", 30*time.Minute),
		RefreshTokenTTL: getDurationEnv("REFRESH_TOKEN_TTL", 7*24*time.Hour),

		CacheTTL: CacheTTL{
			PollList:    getDurationEnv("CACHE_TTL_POLL_LIST", 5*time.Minute),
			PollDetail:  getDurationEnv("CACHE_TTL_POLL_DETAIL", 10*time.Minute),
			PollResults: getDurationEnv("CACHE_TTL_POLL_RESULTS", 2*time.Minute),
			Category:    getDurationEnv("CACHE_TTL_CATEGORY", 15*time.Minute),
			Campaign:    getDurationEnv("CACHE_TTL_CAMPAIGN", 15*time.Minute),
		},
	}, nil
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getInt32Env gets an integer environment variable with a fallback value
func getInt32Env(key string, fallback int32) int32 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 32); err == nil && parsed > 0 {
			return int32(parsed)
		}
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback value
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// parseOrigins parses comma-separated origins into a slice
func parseOrigins(origins string) []string {
	if origins == "" {
		return []string{}
	}

	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
