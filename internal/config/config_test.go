package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("SQLITE_PATH", "")
	t.Setenv("PORT", "")
	t.Setenv("AMQP_URL", "")
	t.Setenv("S3_BUCKET", "")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.StorageBackend)
	assert.Equal(t, "data/pennywise.db", cfg.SQLitePath)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 120, cfg.RateLimitPerMinute)
	assert.False(t, cfg.S3.Enabled())
	assert.Equal(t, "budget.alert", cfg.AMQP.RoutingKey)
}

func TestLoad_Postgres(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "Postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_URL")

	t.Setenv("DATABASE_URL", "postgres://localhost/pennywise")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendPostgres, cfg.StorageBackend)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "sheets")

	_, err := Load()

	assert.ErrorContains(t, err, "STORAGE_BACKEND")
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("RATE_LIMIT_BURST", "lots")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 20, cfg.RateLimitBurst)
}
