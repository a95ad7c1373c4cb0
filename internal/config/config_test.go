package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "./vgsales.csv", cfg.DataFile)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 100, cfg.PublisherThreshold)
	assert.Equal(t, 20, cfg.PlatformThreshold)
	assert.Equal(t, 10, cfg.TopK)
	assert.True(t, cfg.SeriesWrapAround)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("VGSALES_PORT", "9090")
	t.Setenv("VGSALES_TOP_K", "5")
	t.Setenv("VGSALES_SERIES_WRAP_AROUND", "false")
	t.Setenv("VGSALES_CORS_ORIGINS", "http://a.test,http://b.test")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 5, cfg.TopK)
	assert.False(t, cfg.SeriesWrapAround)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoadFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("VGSALES_DATA_FILE=/data/games.csv\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("VGSALES_DATA_FILE") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/games.csv", cfg.DataFile)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"VGSALES_TOP_K":     "0",
		"VGSALES_LOG_LEVEL": "verbose",
		"VGSALES_PORT":      "70000",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}
}
