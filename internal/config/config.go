package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Matching Config
	MatchBatchSize    int           `env:"MATCH_BATCH_SIZE" envDefault:"5"`
	MatchStageTimeout time.Duration `env:"MATCH_STAGE_TIMEOUT" envDefault:"60s"`
	GradeMin          int           `env:"GRADE_MIN" envDefault:"1"`
	GradeMax          int           `env:"GRADE_MAX" envDefault:"5"`
	HospitalCacheTTL  time.Duration `env:"HOSPITAL_CACHE_TTL" envDefault:"5m"`

	// Dispatch Config (внешний сервис обзвона больниц)
	DispatchURL     string        `env:"DISPATCH_URL"`
	DispatchSecret  string        `env:"DISPATCH_SECRET"`
	DispatchTimeout time.Duration `env:"DISPATCH_TIMEOUT" envDefault:"10s"`
	CallbackURL     string        `env:"CALLBACK_URL"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// Stats Config
	StatsTimeWindowMinutes int `env:"STATS_TIME_WINDOW_MINUTES" envDefault:"60"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		HTTPPort:               getEnv("HTTP_PORT", "8080"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		RedisAddr:              getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:              os.Getenv("REDIS_PASSWORD"),
		RedisDB:                getEnvAsInt("REDIS_DB", 0),
		MatchBatchSize:         getEnvAsInt("MATCH_BATCH_SIZE", 5),
		MatchStageTimeout:      getEnvAsDuration("MATCH_STAGE_TIMEOUT", 60*time.Second),
		GradeMin:               getEnvAsInt("GRADE_MIN", 1),
		GradeMax:               getEnvAsInt("GRADE_MAX", 5),
		HospitalCacheTTL:       getEnvAsDuration("HOSPITAL_CACHE_TTL", 5*time.Minute),
		DispatchURL:            os.Getenv("DISPATCH_URL"),
		DispatchSecret:         os.Getenv("DISPATCH_SECRET"),
		DispatchTimeout:        getEnvAsDuration("DISPATCH_TIMEOUT", 10*time.Second),
		CallbackURL:            os.Getenv("CALLBACK_URL"),
		WebhookURL:             os.Getenv("WEBHOOK_URL"),
		WebhookSecret:          os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:         getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries:      getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:       getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
		StatsTimeWindowMinutes: getEnvAsInt("STATS_TIME_WINDOW_MINUTES", 60),
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if cfg.GradeMin < 1 || cfg.GradeMax < cfg.GradeMin {
		return nil, fmt.Errorf("invalid grade range: min=%d max=%d", cfg.GradeMin, cfg.GradeMax)
	}

	if cfg.MatchBatchSize < 1 {
		return nil, fmt.Errorf("MATCH_BATCH_SIZE must be positive, got %d", cfg.MatchBatchSize)
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
