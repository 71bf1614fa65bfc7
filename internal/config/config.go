package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName  string
	AppEnv   string
	Port     string
	Timezone string // IANA name or "Local"; decides when a new day starts

	// Database (optional driver switch via ENV, default: sqlite)
	// Drivers: sqlite, pgx, mysql, memory
	DBDriver     string
	DBConnection string

	// Observability (optional)
	SentryDSN string

	// Logging (optional rotating file in addition to stdout)
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int

	// Rate limiting for write endpoints, per client IP
	RateLimitWrites int
	RateLimitWindow time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName:  envString("APP_NAME", "MealPath"),
		AppEnv:   envRequired("APP_ENV"), // Required: 'development' or 'production'
		Port:     envString("PORT", "8090"),
		Timezone: envString("APP_TIMEZONE", "Local"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/mealpath.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Logging
		LogFile:       envString("LOG_FILE", ""),
		LogMaxSizeMB:  envInt("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups: envInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays: envInt("LOG_MAX_AGE_DAYS", 30),

		// Rate limiting
		RateLimitWrites: envInt("RATE_LIMIT_WRITES", 60),
		RateLimitWindow: envDuration("RATE_LIMIT_WINDOW", time.Minute),
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures production deployments use durable storage.
// Development allows the in-memory store for easier local testing.
func validateProduction(cfg *Config) {
	if cfg.DBDriver == "memory" {
		slog.Error("production deployment requires a persistent DB_DRIVER",
			"hint", "use sqlite, pgx or mysql; memory is for development only")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Location resolves Timezone, falling back to the process zone when the name
// is unknown.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		slog.Warn("config invalid timezone, using local", "timezone", c.Timezone, "error", err)
		return time.Local
	}
	return loc
}
