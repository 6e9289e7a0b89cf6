package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENV", "PORT", "DATABASE_URL", "REDIS_ADDR", "REDIS_HOST", "REDIS_PORT",
		"REDIS_PASSWORD", "JWT_SECRET", "BCRYPT_COST", "CACHE_TTL_SECONDS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	assert.Equal(t, ProductionEnv, cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.JWTSecret)
}

func TestLoadDevFallbackSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", DevEnv)

	cfg := Load()
	assert.Equal(t, "unsecure", cfg.JWTSecret)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "3000")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("CACHE_TTL_SECONDS", "5")
	t.Setenv("REDIS_HOST", "cache.internal")

	cfg := Load()
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, 5*time.Second, cfg.CacheTTL)
	assert.Equal(t, "cache.internal:6379", cfg.RedisAddr)
}

func TestLoadRedisAddrWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_ADDR", "10.0.0.1:6380")
	t.Setenv("REDIS_HOST", "ignored")

	cfg := Load()
	assert.Equal(t, "10.0.0.1:6380", cfg.RedisAddr)
}
