package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.False(t, cfg.RedisEnabled())
	assert.Equal(t, 0, cfg.JWTExpiryMin)
	assert.Equal(t, time.Duration(0), cfg.TokenTTL())
	assert.Equal(t, 60*time.Second, cfg.RateLimitWindow())
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRY_MIN", "30")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("BCRYPT_COST", "not-a-number")

	cfg := LoadConfig()

	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL())
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, 12, cfg.BcryptCost)
}
