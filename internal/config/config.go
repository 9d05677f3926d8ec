package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/toshitha/habithub/internal/core/domain"
)

// Config holds the whole application configuration. It is loaded once at
// startup from environment variables and treated as immutable afterwards.
type Config struct {
	// Database
	DBUser     string
	DBPassword string
	DBName     string
	DBHost     string
	DBPort     string

	// Redis
	RedisHost     string
	RedisPassword string
	RedisPort     string
	RedisDB       int

	// Auth
	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration

	// Reporting
	StarScheme domain.StarScheme

	// Scheduler
	SchedulerTick time.Duration

	// Server
	ServerPort string

	// Rate limit (requests per window, per client IP)
	RateLimit       int
	RateLimitWindow time.Duration
}

// Load reads the configuration from the environment. A .env file in the
// working directory is picked up when present (local development).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),

		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTIssuer: getEnv("JWT_ISSUER", "habithub"),
		TokenTTL:  getEnvDuration("TOKEN_TTL", 24*time.Hour),

		SchedulerTick: getEnvDuration("SCHEDULER_TICK", time.Minute),

		ServerPort: getEnv("PORT", "8080"),

		RateLimit:       getEnvInt("RATE_LIMIT", 100),
		RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
	}

	switch domain.StarScheme(getEnv("STAR_SCHEME", string(domain.StarSchemeAsymmetric))) {
	case domain.StarSchemeLinear:
		cfg.StarScheme = domain.StarSchemeLinear
	default:
		cfg.StarScheme = domain.StarSchemeAsymmetric
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}

	return cfg, nil
}

// DSN builds the postgres connection URL.
func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
