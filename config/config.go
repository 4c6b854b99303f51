package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	GinMode string

	DBDriver string
	DBDSN    string

	JWTSecret string

	RedisAddr     string
	RedisPassword string
	RabbitMQURL   string

	PollInterval    time.Duration
	FetchTimeout    time.Duration
	AssignmentGuard bool

	StaleCleaningAfter    time.Duration
	StaleCleaningSchedule string

	CORSOrigins []string
	RateLimit   int
	LogLevel    string
}

// Load reads .env (when present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	return &Config{
		Port:                  getEnv("PORT", "8080"),
		GinMode:               getEnv("GIN_MODE", "debug"),
		DBDriver:              strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DBDSN:                 os.Getenv("DB_DSN"),
		JWTSecret:             getEnv("JWT_SECRET", "dev-secret-change-me"),
		RedisAddr:             os.Getenv("REDIS_ADDR"),
		RedisPassword:         os.Getenv("REDIS_PASSWORD"),
		RabbitMQURL:           os.Getenv("RABBITMQ_URL"),
		PollInterval:          getDuration("POLL_INTERVAL", 5*time.Second),
		FetchTimeout:          getDuration("FETCH_TIMEOUT", 4*time.Second),
		AssignmentGuard:       getBool("ASSIGNMENT_GUARD", false),
		StaleCleaningAfter:    getDuration("STALE_CLEANING_AFTER", 4*time.Hour),
		StaleCleaningSchedule: getEnv("STALE_CLEANING_SCHEDULE", "*/15 * * * *"),
		CORSOrigins:           getList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		RateLimit:             getInt("RATE_LIMIT", 50),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %t", key, v, fallback)
		return fallback
	}
	return b
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
