package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_ENV", "ENV", "APP_DEBUG", "HTTP_ADDR", "DATABASE_URL", "LOG_LEVEL", "LOG_FORMAT",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "DAY_CACHE_TTL", "ROOM_LOCK_TTL",
		"RABBITMQ_URL", "BOOKING_EVENTS_QUEUE", "CORS_ALLOWED_ORIGINS", "SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.False(t, cfg.Debug)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "meetingroom.db", cfg.DatabaseURL)
	assert.Equal(t, 5*time.Minute, cfg.DayCacheTTL)
	assert.Equal(t, 10*time.Second, cfg.RoomLockTTL)
	assert.Equal(t, "booking.created", cfg.EventsQueue)
	assert.False(t, cfg.RedisEnabled())
	assert.False(t, cfg.RabbitMQEnabled())
	assert.Empty(t, cfg.CORSOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_DEBUG", "yes")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("DAY_CACHE_TTL", "30s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 30*time.Second, cfg.DayCacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		key, value string
	}{
		{"DAY_CACHE_TTL", "soon"},
		{"ROOM_LOCK_TTL", "-1s"},
		{"ROOM_LOCK_TTL", "500ms"},
		{"REDIS_DB", "two"},
		{"LOG_FORMAT", "xml"},
		{"SHUTDOWN_TIMEOUT", "0s"},
	}
	for _, tc := range cases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_ProdRequiresPostgres(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("DATABASE_URL", "postgres://app:secret@db:5432/rooms")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.AppEnv)
}
