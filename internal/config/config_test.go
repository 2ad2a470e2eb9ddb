package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("HTTP_PORT", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:8084"}, cfg.CORSOrigins)
	assert.Equal(t, time.Hour, cfg.CacheDuration())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("ACCESS_TOKEN_TTL", "5m")
	t.Setenv("WEB_MOCK_FALLBACK", "true")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("CORS_ORIGINS", " https://a.example , https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	assert.True(t, cfg.WebMockFallback)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Run("Int", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "eighty")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "HTTP_PORT")
	})
	t.Run("Duration", func(t *testing.T) {
		t.Setenv("ACCESS_TOKEN_TTL", "soon")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "ACCESS_TOKEN_TTL")
	})
}

func TestValidateAPI(t *testing.T) {
	base := Config{
		HTTPPort:       8080,
		WebPort:        8084,
		LogLevel:       "info",
		LogFormat:      "json",
		RateLimitRPS:   10,
		RateLimitBurst: 20,
	}

	t.Run("MissingSecret", func(t *testing.T) {
		cfg := base
		assert.ErrorContains(t, cfg.ValidateAPI(), "JWT_SECRET is required")
	})

	t.Run("ShortSecret", func(t *testing.T) {
		cfg := base
		cfg.JWTSecret = "short"
		assert.ErrorContains(t, cfg.ValidateAPI(), "at least 32")
	})

	t.Run("Valid", func(t *testing.T) {
		cfg := base
		cfg.JWTSecret = "0123456789abcdef0123456789abcdef"
		assert.NoError(t, cfg.ValidateAPI())
	})

	t.Run("BadLogLevel", func(t *testing.T) {
		cfg := base
		cfg.LogLevel = "fatal"
		assert.ErrorContains(t, cfg.Validate(), "LOG_LEVEL")
	})
}
