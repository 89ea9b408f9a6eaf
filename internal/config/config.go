package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr          string
	DatabaseURL   string
	JWTSecret     string
	TokenTTL      time.Duration
	AdminEmail    string
	AdminPassword string
	CORSOrigins   string

	// RedisAddr is optional; without it idempotency keys are kept in process.
	RedisAddr      string
	IdempotencyTTL time.Duration

	CleanupInterval      time.Duration
	CleanupRetentionDays int
}

// Load reads configuration from environment variables. Callers load any
// .env file beforehand.
func Load() Config {
	return Config{
		Addr:                 getEnv("ADDR", ":5000"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		TokenTTL:             getEnvAsDuration("TOKEN_TTL", 24*time.Hour),
		AdminEmail:           os.Getenv("ADMIN_EMAIL"),
		AdminPassword:        os.Getenv("ADMIN_PASSWORD"),
		CORSOrigins:          getEnv("CORS_ORIGINS", "*"),
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		IdempotencyTTL:       getEnvAsDuration("IDEMPOTENCY_TTL", 24*time.Hour),
		CleanupInterval:      getEnvAsDuration("CLEANUP_INTERVAL", 0),
		CleanupRetentionDays: getEnvAsInt("CLEANUP_RETENTION_DAYS", 30),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
