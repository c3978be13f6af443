// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"hydroflow-bot/internal/scheduler"
	"hydroflow-bot/internal/util"
	"hydroflow-bot/pkg/db"
)

// RedisConfig configures the outbound notification queue.
// An empty Addr disables Redis and notifications are only logged.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	OutboxKey string
}

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort  string
	Log         util.LogConfig
	DB          db.Config
	Redis       RedisConfig
	Reminder    scheduler.Config
	CORSOrigins []string
}

// LoadConfig loads configuration from environment variables, reading a .env
// file first when one is present.
func LoadConfig() (*AppConfig, error) {
	// A missing .env is fine; variables may come from the environment directly.
	_ = godotenv.Load()

	logDev := os.Getenv("LOG_DEV") == "1"
	logLevel := getEnv("LOG_LEVEL", "info")
	if logDev && os.Getenv("LOG_LEVEL") == "" {
		logLevel = "debug"
	}

	tick, err := getDuration("REMINDER_TICK", scheduler.DefaultTick)
	if err != nil {
		return nil, err
	}
	interval, err := getDuration("REMINDER_INTERVAL", scheduler.DefaultInterval)
	if err != nil {
		return nil, err
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	dbDriver := getEnv("DB_DRIVER", db.DriverPostgres)
	if dbDriver != db.DriverPostgres && dbDriver != db.DriverSQLite {
		return nil, fmt.Errorf("invalid DB_DRIVER %q: want %s or %s", dbDriver, db.DriverPostgres, db.DriverSQLite)
	}

	return &AppConfig{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		Log: util.LogConfig{
			Level: logLevel,
			Dev:   logDev,
		},
		DB: db.Config{
			Driver: dbDriver,
			DSN:    os.Getenv("DATABASE_URL"), // empty keeps the journal in memory
		},
		Redis: RedisConfig{
			Addr:      os.Getenv("REDIS_ADDR"),
			Password:  os.Getenv("REDIS_PASSWORD"),
			DB:        redisDB,
			OutboxKey: os.Getenv("NOTIFY_OUTBOX_KEY"),
		},
		Reminder: scheduler.Config{
			Tick:     tick,
			Interval: interval,
		},
		CORSOrigins: splitList(os.Getenv("CORS_ORIGINS")),
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive duration such as 60s", key, raw)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
