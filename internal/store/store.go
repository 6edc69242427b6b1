package store

import (
	"context"
	"errors"

	"github.com/mnogodumalon/habits/internal/model"
)

var (
	// ErrNotFound is returned when a record id is unknown to the backend.
	ErrNotFound = errors.New("record not found")

	// ErrReadOnly is returned by write operations on the offline backend.
	ErrReadOnly = errors.New("offline mode: changes cannot be saved")
)

// Store defines the record CRUD surface the dashboard persists through.
// The Living Apps service, the in-memory backend and the offline snapshot
// all implement it.
type Store interface {
	// === Habits ===

	ListHabits(ctx context.Context) ([]model.Habit, error)
	GetHabit(ctx context.Context, id string) (model.Habit, error)
	CreateHabit(ctx context.Context, fields model.HabitFields) (model.CreateResult, error)
	UpdateHabit(ctx context.Context, id string, patch model.HabitPatch) error
	DeleteHabit(ctx context.Context, id string) error

	// === Habit logs ===

	ListHabitLogs(ctx context.Context) ([]model.HabitLog, error)
	GetHabitLog(ctx context.Context, id string) (model.HabitLog, error)
	CreateHabitLog(ctx context.Context, fields model.HabitLogFields) (model.CreateResult, error)
	UpdateHabitLog(ctx context.Context, id string, patch model.HabitLogPatch) error
	DeleteHabitLog(ctx context.Context, id string) error
}
