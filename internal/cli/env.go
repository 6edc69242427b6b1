package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mnogodumalon/habits/internal/credential"
	"github.com/mnogodumalon/habits/internal/dashboard"
	"github.com/mnogodumalon/habits/internal/livingapps"
	"github.com/mnogodumalon/habits/internal/logger"
	"github.com/mnogodumalon/habits/internal/model"
	"github.com/mnogodumalon/habits/internal/store"
)

// env is everything a command needs once flags and config are resolved.
type env struct {
	cfg    *model.AppConfig
	dash   *dashboard.Dashboard
	cache  *store.SQLiteStore
	source string
}

func (f *globalFlags) resolvedConfigPath() string {
	if f.configPath != "" {
		return f.configPath
	}
	return model.DefaultConfigPath()
}

// loadConfig initializes logging and reads the config file.
func loadConfig(f *globalFlags, tui bool) (*model.AppConfig, error) {
	if err := logger.Init(logger.Config{
		Debug:  f.debug,
		Dir:    model.StateDir(),
		Stderr: !tui,
	}); err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	return model.LoadConfig(f.resolvedConfigPath())
}

// openEnv wires the store chosen by the flags into a dashboard.
func openEnv(ctx context.Context, f *globalFlags, tui bool) (*env, error) {
	cfg, err := loadConfig(f, tui)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg}

	var s store.Store
	switch {
	case f.demo:
		ms := store.NewMemoryStore()
		if err := store.SeedDemo(ctx, ms, model.Today()); err != nil {
			return nil, err
		}
		s = ms
		e.source = "demo"

	case f.offline:
		if !cfg.Cache.Enabled {
			return nil, errors.New("offline mode needs the local cache: set cache.enabled in " + f.resolvedConfigPath())
		}
		cache, err := store.NewSQLiteStore(cfg.Cache.Path)
		if err != nil {
			return nil, fmt.Errorf("opening cache: %w", err)
		}
		e.cache = cache
		s = store.NewOffline(cache)
		e.source = "offline"
		if at, ok, err := cache.SyncedAt(ctx, store.CollectionHabits); err == nil && ok {
			e.source = "offline · " + at.Local().Format("Jan 2 15:04")
		}

	default:
		session, err := credential.Session()
		if err != nil {
			logger.Warn("reading session from keyring", "error", err)
		}
		svc, err := livingapps.NewService(cfg.LivingApps, session)
		if err != nil {
			return nil, err
		}
		s = svc
		e.source = "living apps"

		if cfg.Cache.Enabled {
			cache, err := store.NewSQLiteStore(cfg.Cache.Path)
			if err != nil {
				logger.Warn("opening cache, continuing without it", "path", cfg.Cache.Path, "error", err)
			} else {
				e.cache = cache
				s = store.NewMirror(svc, cache)
			}
		}
	}

	e.dash = dashboard.New(s)
	if f.date != "" {
		day, err := model.ParseDayInput(f.date, time.Now())
		if err != nil {
			e.Close()
			return nil, err
		}
		e.dash.SelectDate(day)
	}

	return e, nil
}

// load opens the environment and performs the initial load.
func load(ctx context.Context, f *globalFlags) (*env, error) {
	e, err := openEnv(ctx, f, false)
	if err != nil {
		return nil, err
	}
	if err := e.dash.Load(ctx); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

// Close releases the cache, if one is open.
func (e *env) Close() error {
	if e.cache != nil {
		return e.cache.Close()
	}
	return nil
}
