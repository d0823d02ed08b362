package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                   string
	DBPath                 string
	LogLevel               string
	DefaultScale           string
	NewCardsPerDay         int
	DueCardsPerDay         int
	AchievementWorkerCount int
	AchievementQueueSize   int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                   envOr("ADDR", ":8080"),
		DBPath:                 envOr("DB_PATH", "file:quizflash.db"),
		LogLevel:               envOr("LOG_LEVEL", "INFO"),
		DefaultScale:           envOr("DEFAULT_SCALE", "three"),
		NewCardsPerDay:         envIntOr("NEW_CARDS_PER_DAY", 20),
		DueCardsPerDay:         envIntOr("DUE_CARDS_PER_DAY", 200),
		AchievementWorkerCount: envIntOr("ACHIEVEMENT_WORKER_COUNT", 1),
		AchievementQueueSize:   envIntOr("ACHIEVEMENT_QUEUE_SIZE", 64),
	}
}

// Validate checks every field and reports all problems at once.
func (c Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Addr) == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	switch strings.ToLower(c.DefaultScale) {
	case "three", "six":
	default:
		problems = append(problems, fmt.Sprintf("DEFAULT_SCALE must be three or six (got %q)", c.DefaultScale))
	}
	if c.NewCardsPerDay < 0 {
		problems = append(problems, "NEW_CARDS_PER_DAY must not be negative")
	}
	if c.DueCardsPerDay < 1 {
		problems = append(problems, "DUE_CARDS_PER_DAY must be at least 1")
	}
	if c.AchievementWorkerCount < 1 {
		problems = append(problems, "ACHIEVEMENT_WORKER_COUNT must be at least 1")
	}
	if c.AchievementQueueSize < 1 {
		problems = append(problems, "ACHIEVEMENT_QUEUE_SIZE must be at least 1")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
