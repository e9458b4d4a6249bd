package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseURL     string
	JWTSecret       string
	JWTExpiration   time.Duration
	ServerPort      string
	HistoryPageSize int
	WeekLookBack    int
}

func Load() *Config {
	return &Config{
		DatabaseURL:     getEnv("DATABASE_URL", "postgresql://postgres@localhost:5432/hrportal"),
		JWTSecret:       getEnv("JWT_SECRET", "your-super-secret-key-change-in-production"),
		JWTExpiration:   24 * time.Hour,
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		HistoryPageSize: getEnvInt("HISTORY_PAGE_SIZE", 5),
		WeekLookBack:    getEnvInt("WEEK_LOOK_BACK", 4),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
