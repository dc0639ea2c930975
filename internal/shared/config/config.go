package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	Env  string

	// Persistence
	DatabaseURL string
	StoreDriver string // "sql" or "redis"
	RedisURL    string
	AutoMigrate bool

	// Change notification fan-out: "local" or "redis"
	NotifyDriver string

	// Invoicing
	DefaultCurrency     string
	RecentInvoicesLimit int
	OverdueSweepCron    string

	// Activity log retention (SQL store only)
	ActivityPruneCron     string
	ActivityRetentionDays int

	// Logging
	LogLevel  string
	LogFormat string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		Port:                  os.Getenv("PORT"),
		Env:                   os.Getenv("ENV"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		StoreDriver:           strings.ToLower(os.Getenv("STORE_DRIVER")),
		RedisURL:              os.Getenv("REDIS_URL"),
		AutoMigrate:           getBool("AUTO_MIGRATE", true),
		NotifyDriver:          strings.ToLower(os.Getenv("NOTIFY_DRIVER")),
		DefaultCurrency:       os.Getenv("DEFAULT_CURRENCY"),
		RecentInvoicesLimit:   getInt("RECENT_INVOICES_LIMIT", 5),
		OverdueSweepCron:      os.Getenv("OVERDUE_SWEEP_CRON"),
		ActivityPruneCron:     os.Getenv("ACTIVITY_PRUNE_CRON"),
		ActivityRetentionDays: getInt("ACTIVITY_RETENTION_DAYS", 365),
		LogLevel:              os.Getenv("LOG_LEVEL"),
		LogFormat:             os.Getenv("LOG_FORMAT"),
	}

	// Default values
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "sqlite://data/invoicevista.db"
	}
	if cfg.StoreDriver == "" {
		cfg.StoreDriver = "sql"
	}
	if cfg.NotifyDriver == "" {
		cfg.NotifyDriver = "local"
	}
	if cfg.RedisURL == "" && (cfg.StoreDriver == "redis" || cfg.NotifyDriver == "redis") {
		cfg.RedisURL = "redis://localhost:6379"
	}
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = "USD"
	}
	if cfg.OverdueSweepCron == "" {
		// Every day at 00:05 (seconds field enabled)
		cfg.OverdueSweepCron = "0 5 0 * * *"
	}
	if cfg.ActivityPruneCron == "" {
		cfg.ActivityPruneCron = "0 30 3 * * 0"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "console"
	}

	return cfg
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		log.Printf("⚠️ invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("⚠️ invalid %s=%q, using %t", key, raw, fallback)
		return fallback
	}
	return v
}
