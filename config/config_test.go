package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_TTL", "")
	t.Setenv("REDIS_ADDR", "")

	cfg := Load()
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, DefaultJWTSecret, cfg.JWTSecret)
	assert.Equal(t, "password", cfg.SeedPassword)
	assert.Empty(t, cfg.RedisAddr)
	require.NoError(t, cfg.Validate())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_TTL", "tomorrow")
	t.Setenv("BCRYPT_COST", "high")
	t.Setenv("SEED_SAMPLE_NOTES", "maybe")

	cfg := Load()
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.False(t, cfg.SeedSampleNotes)
}

func TestValidate_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	cfg := Load()
	assert.Error(t, cfg.Validate())

	cfg.JWTSecret = "rotated"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_BcryptCostRange(t *testing.T) {
	cfg := Load()
	cfg.BcryptCost = 3
	assert.Error(t, cfg.Validate())
	cfg.BcryptCost = 32
	assert.Error(t, cfg.Validate())
}

func TestCORSOrigins(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " https://a.test ,, https://b.test"}
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORSOrigins())

	cfg.CORSAllowedOrigins = ""
	assert.Empty(t, cfg.CORSOrigins())
}
