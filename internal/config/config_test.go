package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"TELEGRAM_TOKEN": "token",
		"DB_DSN":         "postgres://localhost/bus",
	}))

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Empty(t, cfg.MigrationsDir)
	assert.Equal(t, "Asia/Seoul", cfg.Timezone.String())
	assert.Equal(t, DataSourceMock, cfg.DataSource)
	assert.True(t, cfg.MockLatency)
	assert.Equal(t, 3, cfg.FetchAttempts)
	assert.Equal(t, time.Second, cfg.FetchDelay)
	assert.Equal(t, 3*time.Second, cfg.PaymentIdleDelay)
	assert.Equal(t, 4*time.Second, cfg.PaymentProcessingDelay)
	assert.Equal(t, 2*time.Second, cfg.PaymentSuccessDelay)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, 5, cfg.RateLimitMax)
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"TELEGRAM_TOKEN":    "token",
		"DB_DSN":            "postgres://localhost/bus",
		"ENV":               "production",
		"DATA_SOURCE":       "remote",
		"MOCK_LATENCY":      "false",
		"FETCH_ATTEMPTS":    "5",
		"FETCH_RETRY_DELAY": "250ms",
		"TIMEZONE":          "UTC",
		"REDIS_ADDR":        "localhost:6379",
	}))

	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, DataSourceRemote, cfg.DataSource)
	assert.False(t, cfg.MockLatency)
	assert.Equal(t, 5, cfg.FetchAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.FetchDelay)
	assert.Equal(t, time.UTC, cfg.Timezone)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestFromEnv_Errors(t *testing.T) {
	base := map[string]string{"TELEGRAM_TOKEN": "token", "DB_DSN": "dsn"}

	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "missing token", key: "TELEGRAM_TOKEN", val: ""},
		{name: "missing dsn", key: "DB_DSN", val: ""},
		{name: "bad source", key: "DATA_SOURCE", val: "gemini"},
		{name: "bad duration", key: "SESSION_TTL", val: "forever"},
		{name: "bad int", key: "FETCH_ATTEMPTS", val: "three"},
		{name: "zero attempts", key: "FETCH_ATTEMPTS", val: "0"},
		{name: "bad timezone", key: "TIMEZONE", val: "Mars/Olympus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := map[string]string{}
			for k, v := range base {
				values[k] = v
			}
			values[tt.key] = tt.val

			_, err := FromEnv(env(values))

			assert.Error(t, err)
		})
	}
}
