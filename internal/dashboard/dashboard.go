package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/mnogodumalon/habits/internal/logger"
	"github.com/mnogodumalon/habits/internal/model"
	"github.com/mnogodumalon/habits/internal/store"
)

var (
	// ErrNotReady is returned by mutations issued before the first load.
	ErrNotReady = errors.New("habits are still loading")

	// ErrEmptyName is returned by AddHabit when the name is blank.
	ErrEmptyName = errors.New("habit name is required")

	// ErrUnknownHabit is returned when toggling a habit that is not loaded.
	ErrUnknownHabit = errors.New("unknown habit")
)

// Dashboard owns the loaded collections and the selected day, and is the
// only place they change. It is safe for concurrent use; store calls run
// outside the lock.
type Dashboard struct {
	store store.Store
	now   func() time.Time

	mu       sync.RWMutex
	snap     Snapshot
	selected model.Day
	ready    bool
}

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithClock overrides the clock used for "today".
func WithClock(now func() time.Time) Option {
	return func(d *Dashboard) { d.now = now }
}

// New creates a Dashboard persisting through s. The selected day starts
// at today.
func New(s store.Store, opts ...Option) *Dashboard {
	d := &Dashboard{store: s, now: time.Now}
	for _, opt := range opts {
		opt(d)
	}
	d.selected = d.Today()
	return d
}

// Today returns the current day according to the dashboard clock.
func (d *Dashboard) Today() model.Day {
	return model.DayOf(d.now())
}

// Ready reports whether the first load has finished, successfully or not.
func (d *Dashboard) Ready() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.ready
}

// Snapshot returns the current collections.
func (d *Dashboard) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snap
}

// SelectedDate returns the day the dashboard is focused on.
func (d *Dashboard) SelectedDate() model.Day {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.selected
}

// SelectDate focuses the dashboard on day. Invalid days are ignored.
func (d *Dashboard) SelectDate(day model.Day) {
	if !day.Valid() {
		return
	}
	d.mu.Lock()
	d.selected = day
	d.mu.Unlock()
}

// ShiftDate moves the selected day by n days and returns the new one.
func (d *Dashboard) ShiftDate(n int) model.Day {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selected = d.selected.AddDays(n)
	return d.selected
}

// Load fetches habits and habit logs concurrently. On failure the previous
// collections are kept and the error is returned; either way the
// dashboard is ready afterwards.
func (d *Dashboard) Load(ctx context.Context) error {
	var (
		habits []model.Habit
		logs   []model.HabitLog
	)

	p := pool.New().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		h, err := d.store.ListHabits(ctx)
		if err != nil {
			return err
		}
		habits = h
		return nil
	})
	p.Go(func(ctx context.Context) error {
		l, err := d.store.ListHabitLogs(ctx)
		if err != nil {
			return err
		}
		logs = l
		return nil
	})
	err := p.Wait()

	d.mu.Lock()
	defer d.mu.Unlock()
	d.ready = true

	if err != nil {
		logger.Error("failed to load habits", "error", err)
		return fmt.Errorf("loading habits: %w", err)
	}

	d.snap = Snapshot{Habits: habits, Logs: logs}
	logger.Debug("loaded habits", "habits", len(habits), "logs", len(logs))
	return nil
}

// ToggleCompletion flips the completion of habitID on day. An existing
// log is flipped locally right away and then patched; the local flip is
// kept even if the patch fails. Without a log, a completed one is created
// and the log collection is fetched again.
func (d *Dashboard) ToggleCompletion(ctx context.Context, habitID string, day model.Day) error {
	d.mu.Lock()
	if !d.ready {
		d.mu.Unlock()
		return ErrNotReady
	}
	if !d.snap.HasHabit(habitID) {
		d.mu.Unlock()
		return fmt.Errorf("toggling habit %s: %w", habitID, ErrUnknownHabit)
	}

	existing, ok := d.snap.LogFor(habitID, day)
	if ok {
		completed := !existing.Completed
		d.snap = d.snap.withCompleted(existing.ID, completed)
		d.mu.Unlock()

		patch := model.HabitLogPatch{Completed: &completed}
		if err := d.store.UpdateHabitLog(ctx, existing.ID, patch); err != nil {
			logger.Error("failed to update habit log",
				"log", existing.ID, "habit", habitID, "error", err)
			return fmt.Errorf("toggling habit %s: %w", habitID, err)
		}
		return nil
	}
	d.mu.Unlock()

	res, err := d.store.CreateHabitLog(ctx, model.HabitLogFields{
		HabitID:   habitID,
		Date:      day,
		Completed: true,
	})
	if err != nil {
		logger.Error("failed to create habit log", "habit", habitID, "day", day, "error", err)
		return fmt.Errorf("toggling habit %s: %w", habitID, err)
	}
	if res.ID != "" {
		logger.Debug("created habit log", "log", res.ID, "habit", habitID)
	}

	return d.reloadLogs(ctx)
}

// AddHabit creates a daily habit from draft and fetches the habit
// collection again. A blank name is rejected without contacting the store.
func (d *Dashboard) AddHabit(ctx context.Context, draft model.HabitDraft) error {
	name := strings.TrimSpace(draft.Name)
	if name == "" {
		return ErrEmptyName
	}
	if !d.Ready() {
		return ErrNotReady
	}

	res, err := d.store.CreateHabit(ctx, model.HabitFields{
		Name:        name,
		Description: strings.TrimSpace(draft.Description),
		Frequency:   model.FrequencyDaily,
		TargetCount: 1,
		Color:       draft.Color,
		Icon:        draft.Icon,
		CreatedAt:   d.Today(),
	})
	if err != nil {
		logger.Error("failed to create habit", "name", name, "error", err)
		return fmt.Errorf("adding habit %q: %w", name, err)
	}
	if res.ID != "" {
		logger.Debug("created habit", "habit", res.ID, "name", name)
	}

	return d.reloadHabits(ctx)
}

func (d *Dashboard) reloadHabits(ctx context.Context) error {
	habits, err := d.store.ListHabits(ctx)
	if err != nil {
		logger.Error("failed to refresh habits", "error", err)
		return fmt.Errorf("refreshing habits: %w", err)
	}

	d.mu.Lock()
	d.snap = Snapshot{Habits: habits, Logs: d.snap.Logs}
	d.mu.Unlock()
	return nil
}

func (d *Dashboard) reloadLogs(ctx context.Context) error {
	logs, err := d.store.ListHabitLogs(ctx)
	if err != nil {
		logger.Error("failed to refresh habit logs", "error", err)
		return fmt.Errorf("refreshing habit logs: %w", err)
	}

	d.mu.Lock()
	d.snap = Snapshot{Habits: d.snap.Habits, Logs: logs}
	d.mu.Unlock()
	return nil
}

// withCompleted returns a copy of s with the log's completed flag set.
func (s Snapshot) withCompleted(logID string, completed bool) Snapshot {
	logs := make([]model.HabitLog, len(s.Logs))
	copy(logs, s.Logs)
	for i := range logs {
		if logs[i].ID == logID {
			logs[i].Completed = completed
			break
		}
	}
	return Snapshot{Habits: s.Habits, Logs: logs}
}
