package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg := FromViper(viper.New())

	assert.Equal(t, EnvLocal, cfg.Env)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, 60*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 2000, cfg.RateLimit.Requests)
	assert.Equal(t, "redis", cfg.RateLimit.Backend)
	assert.Equal(t, "log", cfg.Email.Provider)
	require.NoError(t, cfg.Validate())
}

func TestFromViper_Overrides(t *testing.T) {
	t.Setenv("RATE_LIMIT_REQUESTS", "10")
	t.Setenv("RATE_LIMIT_WINDOW", "2s")
	t.Setenv("CACHE_TTL", "not-a-duration")
	t.Setenv("REDIS_DB", "x")
	t.Setenv("APP_ENV", EnvProd)

	v := viper.New()
	v.AutomaticEnv()
	cfg := FromViper(v)

	assert.Equal(t, 10, cfg.RateLimit.Requests)
	assert.Equal(t, 2*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, 60*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 0, cfg.Redis.DB)

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate_RateLimitBackend(t *testing.T) {
	cfg := FromViper(viper.New())
	cfg.RateLimit.Backend = "etcd"
	assert.Error(t, cfg.Validate())
}
