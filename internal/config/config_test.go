package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_PORT", "TOKEN_TTL", "LOGIN_MAX_ATTEMPTS", "LOGIN_LOCKOUT",
		"CORS_ALLOW_ORIGINS", "REDIS_ADDR", "RESET_DB", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 5, cfg.LoginMaxAttempts)
	assert.Equal(t, 15*time.Minute, cfg.LoginLockout)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)
	assert.Empty(t, cfg.RedisAddr)
	assert.False(t, cfg.ResetDB)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("LOGIN_MAX_ATTEMPTS", "3")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("RESET_DB", "true")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("SEED_DEMO", "1")

	cfg := Load()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 3, cfg.LoginMaxAttempts)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigins)
	assert.True(t, cfg.ResetDB)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.True(t, cfg.Seed.Demo)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("TOKEN_TTL", "forever")
	t.Setenv("LOGIN_MAX_ATTEMPTS", "many")
	t.Setenv("RESET_DB", "perhaps")
	t.Setenv("LOGIN_LOCKOUT", "-5m")

	cfg := Load()

	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 5, cfg.LoginMaxAttempts)
	assert.False(t, cfg.ResetDB)
	assert.Equal(t, 15*time.Minute, cfg.LoginLockout)
}
