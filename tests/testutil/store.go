package testutil

import (
	"testing"

	"github.com/mnogodumalon/habits/internal/model"
	"github.com/mnogodumalon/habits/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// Habit returns a daily habit with the given id and name.
func Habit(id, name string) model.Habit {
	return model.Habit{
		ID:          id,
		Name:        name,
		Frequency:   model.FrequencyDaily,
		TargetCount: 1,
		CreatedAt:   "2026-01-01",
	}
}

// Log returns a habit log for habitID on day.
func Log(id, habitID string, day model.Day, completed bool) model.HabitLog {
	return model.HabitLog{
		ID:        id,
		HabitID:   habitID,
		Date:      day,
		Completed: completed,
	}
}
