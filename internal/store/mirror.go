package store

import (
	"context"
	"fmt"

	"github.com/mnogodumalon/habits/internal/logger"
	"github.com/mnogodumalon/habits/internal/model"
)

// Mirror wraps a remote Store and copies every successful list into the
// local snapshot. All other calls pass straight through.
type Mirror struct {
	Store
	cache *SQLiteStore
}

// NewMirror returns a Mirror writing list results from remote into cache.
func NewMirror(remote Store, cache *SQLiteStore) *Mirror {
	return &Mirror{Store: remote, cache: cache}
}

// ListHabits fetches habits remotely and refreshes the snapshot.
func (m *Mirror) ListHabits(ctx context.Context) ([]model.Habit, error) {
	habits, err := m.Store.ListHabits(ctx)
	if err != nil {
		return nil, err
	}
	if err := m.cache.ReplaceHabits(ctx, habits); err != nil {
		logger.Warn("updating habit snapshot", "error", err)
	}
	return habits, nil
}

// ListHabitLogs fetches habit logs remotely and refreshes the snapshot.
func (m *Mirror) ListHabitLogs(ctx context.Context) ([]model.HabitLog, error) {
	logs, err := m.Store.ListHabitLogs(ctx)
	if err != nil {
		return nil, err
	}
	if err := m.cache.ReplaceHabitLogs(ctx, logs); err != nil {
		logger.Warn("updating habit log snapshot", "error", err)
	}
	return logs, nil
}

// Offline serves reads from the local snapshot and rejects writes.
type Offline struct {
	cache *SQLiteStore
}

// NewOffline returns a read-only Store backed by cache.
func NewOffline(cache *SQLiteStore) *Offline {
	return &Offline{cache: cache}
}

// ListHabits returns the cached habits.
func (o *Offline) ListHabits(ctx context.Context) ([]model.Habit, error) {
	return o.cache.CachedHabits(ctx)
}

// GetHabit looks a habit up in the snapshot.
func (o *Offline) GetHabit(ctx context.Context, id string) (model.Habit, error) {
	habits, err := o.cache.CachedHabits(ctx)
	if err != nil {
		return model.Habit{}, err
	}
	for _, h := range habits {
		if h.ID == id {
			return h, nil
		}
	}
	return model.Habit{}, fmt.Errorf("habit %s: %w", id, ErrNotFound)
}

// CreateHabit is rejected offline.
func (o *Offline) CreateHabit(context.Context, model.HabitFields) (model.CreateResult, error) {
	return model.CreateResult{}, ErrReadOnly
}

// UpdateHabit is rejected offline.
func (o *Offline) UpdateHabit(context.Context, string, model.HabitPatch) error {
	return ErrReadOnly
}

// DeleteHabit is rejected offline.
func (o *Offline) DeleteHabit(context.Context, string) error {
	return ErrReadOnly
}

// ListHabitLogs returns the cached habit logs.
func (o *Offline) ListHabitLogs(ctx context.Context) ([]model.HabitLog, error) {
	return o.cache.CachedHabitLogs(ctx)
}

// GetHabitLog looks a habit log up in the snapshot.
func (o *Offline) GetHabitLog(ctx context.Context, id string) (model.HabitLog, error) {
	logs, err := o.cache.CachedHabitLogs(ctx)
	if err != nil {
		return model.HabitLog{}, err
	}
	for _, l := range logs {
		if l.ID == id {
			return l, nil
		}
	}
	return model.HabitLog{}, fmt.Errorf("habit log %s: %w", id, ErrNotFound)
}

// CreateHabitLog is rejected offline.
func (o *Offline) CreateHabitLog(context.Context, model.HabitLogFields) (model.CreateResult, error) {
	return model.CreateResult{}, ErrReadOnly
}

// UpdateHabitLog is rejected offline.
func (o *Offline) UpdateHabitLog(context.Context, string, model.HabitLogPatch) error {
	return ErrReadOnly
}

// DeleteHabitLog is rejected offline.
func (o *Offline) DeleteHabitLog(context.Context, string) error {
	return ErrReadOnly
}
