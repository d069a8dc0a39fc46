package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"PARLEY_ADDR", "PARLEY_LOG_LEVEL", "PARLEY_LOG_FORMAT", "PARLEY_STORAGE_BACKEND",
		"PARLEY_SERIALIZER", "PARLEY_TRACE_STORAGE", "REDIS_URL", "REDIS_POOL_SIZE", "DATABASE_URL",
	} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, "json", cfg.Storage.Serializer)
	assert.True(t, cfg.Storage.Trace)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
	require.NoError(t, cfg.Validate())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PARLEY_STORAGE_BACKEND", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("REDIS_POOL_SIZE", "not-a-number")
	t.Setenv("PARLEY_TRACE_STORAGE", "false")
	t.Setenv("PARLEY_SERIALIZER", "yaml")

	cfg := FromEnv()
	assert.Equal(t, BackendRedis, cfg.Storage.Backend)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, 10, cfg.Redis.PoolSize, "invalid ints fall back to the default")
	assert.False(t, cfg.Storage.Trace)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	base := Config{Storage: Storage{Backend: BackendMemory, Serializer: "json"}}

	t.Run("redis requires URL", func(t *testing.T) {
		cfg := base
		cfg.Storage.Backend = BackendRedis
		assert.ErrorContains(t, cfg.Validate(), "REDIS_URL")
	})

	t.Run("postgres requires DATABASE_URL", func(t *testing.T) {
		cfg := base
		cfg.Storage.Backend = BackendPostgres
		assert.ErrorContains(t, cfg.Validate(), "DATABASE_URL")
	})

	t.Run("unknown backend and serializer are both reported", func(t *testing.T) {
		cfg := base
		cfg.Storage.Backend = "cassandra"
		cfg.Storage.Serializer = "cbor"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cassandra")
		assert.Contains(t, err.Error(), "cbor")
	})
}
