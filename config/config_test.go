package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "pgx", cfg.DB.Driver)
	assert.Equal(t, "clinic", cfg.DB.Name)
	assert.Equal(t, 25, cfg.DB.MaxOpenConns)
	assert.Equal(t, time.Minute, cfg.Throttle.Window)
	assert.False(t, cfg.Throttle.Enabled())
	assert.Empty(t, cfg.RabbitMQ.URL)
	assert.Equal(t, "clinic-intake", cfg.Telemetry.ServiceName)
}

func TestLoadConfig_ReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "APP_PORT=9090\nDB_NAME=intake\nTHROTTLE_LIMIT=5\nTHROTTLE_WINDOW=30s\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "intake", cfg.DB.Name)
	assert.Equal(t, int64(5), cfg.Throttle.Limit)
	assert.Equal(t, 30*time.Second, cfg.Throttle.Window)
	assert.True(t, cfg.Throttle.Enabled())
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("APP_PORT=9090\n"), 0o600))
	t.Setenv("APP_PORT", "7070")
	t.Setenv("DB_DRIVER", "postgres")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.App.Port)
	assert.Equal(t, "postgres", cfg.DB.Driver)
}

func TestLoadConfig_BadWindowFallsBack(t *testing.T) {
	t.Setenv("THROTTLE_WINDOW", "soon")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, time.Minute, cfg.Throttle.Window)
}
