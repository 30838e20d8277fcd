package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAppEnv          = "dev"
	defaultHTTPAddr        = ":8080"
	defaultDatabaseURL     = "meetingroom.db"
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
	defaultRedisDB         = "0"
	defaultDayCacheTTL     = "5m"
	defaultRoomLockTTL     = "10s"
	defaultEventsQueue     = "booking.created"
	defaultShutdownTimeout = "10s"
	defaultDebug           = "false"
)

type Config struct {
	AppEnv          string
	Debug           bool
	HTTPAddr        string
	DatabaseURL     string
	LogLevel        string
	LogFormat       string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	DayCacheTTL     time.Duration
	RoomLockTTL     time.Duration
	RabbitMQURL     string
	EventsQueue     string
	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over .env entries.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = defaultAppEnv
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Debug = parseBoolEnv("APP_DEBUG", defaultDebug)
	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel)))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(getEnv("LOG_FORMAT", defaultLogFormat)))
	cfg.RedisAddr = strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RabbitMQURL = strings.TrimSpace(os.Getenv("RABBITMQ_URL"))
	cfg.EventsQueue = strings.TrimSpace(getEnv("BOOKING_EVENTS_QUEUE", defaultEventsQueue))
	cfg.CORSOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	var err error
	cfg.RedisDB, err = parseIntEnv("REDIS_DB", defaultRedisDB)
	if err != nil {
		return nil, err
	}

	cfg.DayCacheTTL, err = parseDurationEnv("DAY_CACHE_TTL", defaultDayCacheTTL)
	if err != nil {
		return nil, err
	}

	cfg.RoomLockTTL, err = parseDurationEnv("ROOM_LOCK_TTL", defaultRoomLockTTL)
	if err != nil {
		return nil, err
	}

	cfg.ShutdownTimeout, err = parseDurationEnv("SHUTDOWN_TIMEOUT", defaultShutdownTimeout)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) RedisEnabled() bool    { return c.RedisAddr != "" }
func (c *Config) RabbitMQEnabled() bool { return c.RabbitMQURL != "" }

func validateConfig(cfg *Config) error {
	if cfg.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.DayCacheTTL <= 0 {
		return fmt.Errorf("DAY_CACHE_TTL must be > 0")
	}
	if cfg.RoomLockTTL < time.Second {
		return fmt.Errorf("ROOM_LOCK_TTL must be at least 1s")
	}
	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be > 0")
	}
	if cfg.RedisDB < 0 {
		return fmt.Errorf("REDIS_DB must be >= 0")
	}
	if cfg.RabbitMQEnabled() && cfg.EventsQueue == "" {
		return fmt.Errorf("BOOKING_EVENTS_QUEUE must not be empty when RABBITMQ_URL is set")
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return fmt.Errorf("LOG_FORMAT must be one of: json, text")
	}

	if isProdLike(cfg.AppEnv) && !isPostgresDSN(cfg.DatabaseURL) {
		return fmt.Errorf("in prod/release DATABASE_URL must point to PostgreSQL")
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
