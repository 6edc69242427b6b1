package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// AppName is used for config, data and state directory names.
const AppName = "habits"

// Living Apps defaults for the hosted habit tracker.
const (
	DefaultBaseURL        = "https://my.living-apps.de/rest"
	DefaultHabitsAppID    = "6980ab411df14e26ef90fad2"
	DefaultHabitLogsAppID = "6980ab417ea92a137dca8cf8"
)

// LivingAppsConfig holds the record store connection settings.
type LivingAppsConfig struct {
	// BaseURL is the REST root of the Living Apps instance.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// HabitsAppID and HabitLogsAppID identify the two record collections.
	HabitsAppID    string `mapstructure:"habits_app_id" yaml:"habits_app_id"`
	HabitLogsAppID string `mapstructure:"habit_logs_app_id" yaml:"habit_logs_app_id"`

	// SessionCookie is the name of the cookie carrying the session id.
	SessionCookie string `mapstructure:"session_cookie" yaml:"session_cookie"`

	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	RefreshIntervalSec int `mapstructure:"refresh_interval_sec" yaml:"refresh_interval_sec"`
}

// CacheConfig controls the local snapshot of the last successful load.
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	LivingApps LivingAppsConfig `mapstructure:"livingapps" yaml:"livingapps"`
	Display    DisplayConfig    `mapstructure:"display" yaml:"display"`
	Cache      CacheConfig      `mapstructure:"cache" yaml:"cache"`
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/habits/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// DefaultCachePath returns $XDG_DATA_HOME/habits/cache.db.
func DefaultCachePath() string {
	return filepath.Join(xdg.DataHome, AppName, "cache.db")
}

// StateDir returns $XDG_STATE_HOME/habits, where logs are written.
func StateDir() string {
	return filepath.Join(xdg.StateHome, AppName)
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		LivingApps: LivingAppsConfig{
			BaseURL:        DefaultBaseURL,
			HabitsAppID:    DefaultHabitsAppID,
			HabitLogsAppID: DefaultHabitLogsAppID,
			SessionCookie:  "session",
			TimeoutSec:     30,
		},
		Display: DisplayConfig{
			RefreshIntervalSec: 120,
		},
		Cache: CacheConfig{
			Enabled: true,
		},
	}
}

// newViper returns a viper instance with defaults and HABITS_* env
// overrides registered for every key.
func newViper(path string) *viper.Viper {
	d := defaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("HABITS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("livingapps.base_url", d.LivingApps.BaseURL)
	v.SetDefault("livingapps.habits_app_id", d.LivingApps.HabitsAppID)
	v.SetDefault("livingapps.habit_logs_app_id", d.LivingApps.HabitLogsAppID)
	v.SetDefault("livingapps.session_cookie", d.LivingApps.SessionCookie)
	v.SetDefault("livingapps.timeout_sec", d.LivingApps.TimeoutSec)
	v.SetDefault("display.refresh_interval_sec", d.Display.RefreshIntervalSec)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.path", "")

	return v
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// A missing file is not an error: defaults and environment overrides apply.
func LoadConfig(path string) (*AppConfig, error) {
	v := newViper(path)

	if err := v.ReadInConfig(); err != nil {
		_, isPathErr := err.(*os.PathError)
		_, isNotFound := err.(viper.ConfigFileNotFoundError)
		if !isPathErr && !isNotFound {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.LivingApps.BaseURL = strings.TrimRight(cfg.LivingApps.BaseURL, "/")
	if cfg.LivingApps.TimeoutSec <= 0 {
		cfg.LivingApps.TimeoutSec = 30
	}
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = DefaultCachePath()
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("livingapps.base_url", cfg.LivingApps.BaseURL)
	v.Set("livingapps.habits_app_id", cfg.LivingApps.HabitsAppID)
	v.Set("livingapps.habit_logs_app_id", cfg.LivingApps.HabitLogsAppID)
	v.Set("livingapps.session_cookie", cfg.LivingApps.SessionCookie)
	v.Set("livingapps.timeout_sec", cfg.LivingApps.TimeoutSec)
	v.Set("display.refresh_interval_sec", cfg.Display.RefreshIntervalSec)
	v.Set("cache.enabled", cfg.Cache.Enabled)
	v.Set("cache.path", cfg.Cache.Path)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
