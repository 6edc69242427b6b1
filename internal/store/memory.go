package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mnogodumalon/habits/internal/model"
)

// MemoryStore is an in-process Store used for demo mode and tests.
// Record ids have the same 24-hex shape as Living Apps ids.
type MemoryStore struct {
	mu     sync.Mutex
	habits map[string]model.Habit
	logs   map[string]model.HabitLog
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		habits: make(map[string]model.Habit),
		logs:   make(map[string]model.HabitLog),
	}
}

// NewRecordID mints a 24-character lowercase hex record id.
func NewRecordID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:24]
}

// ListHabits returns all habits ordered by id.
func (m *MemoryStore) ListHabits(_ context.Context) ([]model.Habit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	habits := make([]model.Habit, 0, len(m.habits))
	for _, h := range m.habits {
		habits = append(habits, h)
	}
	sort.Slice(habits, func(i, j int) bool { return habits[i].ID < habits[j].ID })
	return habits, nil
}

// GetHabit returns a habit by id.
func (m *MemoryStore) GetHabit(_ context.Context, id string) (model.Habit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.habits[id]
	if !ok {
		return model.Habit{}, fmt.Errorf("habit %s: %w", id, ErrNotFound)
	}
	return h, nil
}

// CreateHabit stores a new habit under a fresh id.
func (m *MemoryStore) CreateHabit(
	_ context.Context,
	fields model.HabitFields,
) (model.CreateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := NewRecordID()
	m.habits[id] = model.Habit{
		ID:          id,
		Name:        fields.Name,
		Description: fields.Description,
		Frequency:   fields.Frequency,
		TargetCount: fields.TargetCount,
		Color:       fields.Color,
		Icon:        fields.Icon,
		CreatedAt:   fields.CreatedAt,
	}
	return model.CreateResult{ID: id}, nil
}

// UpdateHabit applies the non-nil fields of patch.
func (m *MemoryStore) UpdateHabit(
	_ context.Context,
	id string,
	patch model.HabitPatch,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.habits[id]
	if !ok {
		return fmt.Errorf("habit %s: %w", id, ErrNotFound)
	}
	if patch.Name != nil {
		h.Name = *patch.Name
	}
	if patch.Description != nil {
		h.Description = *patch.Description
	}
	if patch.Frequency != nil {
		h.Frequency = *patch.Frequency
	}
	if patch.TargetCount != nil {
		h.TargetCount = *patch.TargetCount
	}
	if patch.Color != nil {
		h.Color = *patch.Color
	}
	if patch.Icon != nil {
		h.Icon = *patch.Icon
	}
	m.habits[id] = h
	return nil
}

// DeleteHabit removes a habit. Its logs are kept, as in Living Apps.
func (m *MemoryStore) DeleteHabit(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.habits[id]; !ok {
		return fmt.Errorf("habit %s: %w", id, ErrNotFound)
	}
	delete(m.habits, id)
	return nil
}

// ListHabitLogs returns all habit logs ordered by id.
func (m *MemoryStore) ListHabitLogs(_ context.Context) ([]model.HabitLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	logs := make([]model.HabitLog, 0, len(m.logs))
	for _, l := range m.logs {
		logs = append(logs, l)
	}
	sort.Slice(logs, func(i, j int) bool { return logs[i].ID < logs[j].ID })
	return logs, nil
}

// GetHabitLog returns a habit log by id.
func (m *MemoryStore) GetHabitLog(_ context.Context, id string) (model.HabitLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.logs[id]
	if !ok {
		return model.HabitLog{}, fmt.Errorf("habit log %s: %w", id, ErrNotFound)
	}
	return l, nil
}

// CreateHabitLog stores a new habit log under a fresh id. Duplicate
// (habit, date) pairs are accepted.
func (m *MemoryStore) CreateHabitLog(
	_ context.Context,
	fields model.HabitLogFields,
) (model.CreateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := NewRecordID()
	m.logs[id] = model.HabitLog{
		ID:        id,
		HabitID:   fields.HabitID,
		Date:      fields.Date,
		Completed: fields.Completed,
		Notes:     fields.Notes,
	}
	return model.CreateResult{ID: id}, nil
}

// UpdateHabitLog applies the non-nil fields of patch.
func (m *MemoryStore) UpdateHabitLog(
	_ context.Context,
	id string,
	patch model.HabitLogPatch,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.logs[id]
	if !ok {
		return fmt.Errorf("habit log %s: %w", id, ErrNotFound)
	}
	if patch.Date != nil {
		l.Date = *patch.Date
	}
	if patch.Completed != nil {
		l.Completed = *patch.Completed
	}
	if patch.Notes != nil {
		l.Notes = *patch.Notes
	}
	m.logs[id] = l
	return nil
}

// DeleteHabitLog removes a habit log.
func (m *MemoryStore) DeleteHabitLog(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.logs[id]; !ok {
		return fmt.Errorf("habit log %s: %w", id, ErrNotFound)
	}
	delete(m.logs, id)
	return nil
}
