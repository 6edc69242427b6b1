package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.LivingApps.BaseURL)
	assert.Equal(t, DefaultHabitsAppID, cfg.LivingApps.HabitsAppID)
	assert.Equal(t, DefaultHabitLogsAppID, cfg.LivingApps.HabitLogsAppID)
	assert.Equal(t, 30, cfg.LivingApps.TimeoutSec)
	assert.Equal(t, 120, cfg.Display.RefreshIntervalSec)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, DefaultCachePath(), cfg.Cache.Path)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
livingapps:
  base_url: https://example.test/rest/
  habits_app_id: aaaaaaaaaaaaaaaaaaaaaaaa
display:
  refresh_interval_sec: 0
cache:
  enabled: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.test/rest", cfg.LivingApps.BaseURL)
	assert.Equal(t, "aaaaaaaaaaaaaaaaaaaaaaaa", cfg.LivingApps.HabitsAppID)
	assert.Equal(t, DefaultHabitLogsAppID, cfg.LivingApps.HabitLogsAppID)
	assert.Equal(t, 0, cfg.Display.RefreshIntervalSec)
	assert.False(t, cfg.Cache.Enabled)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("HABITS_LIVINGAPPS_BASE_URL", "http://localhost:8080/rest")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/rest", cfg.LivingApps.BaseURL)
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("livingapps: [unclosed"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := defaultAppConfig()
	cfg.LivingApps.BaseURL = "https://other.test/rest"
	cfg.Display.RefreshIntervalSec = 30
	cfg.Cache.Path = "/tmp/habits-cache.db"

	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://other.test/rest", loaded.LivingApps.BaseURL)
	assert.Equal(t, 30, loaded.Display.RefreshIntervalSec)
	assert.Equal(t, "/tmp/habits-cache.db", loaded.Cache.Path)
}
