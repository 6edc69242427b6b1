package livingapps

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mnogodumalon/habits/internal/model"
)

// Service exposes typed CRUD operations on the habit and habit log apps.
type Service struct {
	client         *Client
	habitsAppID    string
	habitLogsAppID string
}

// NewService builds a Service for the configured instance. sessionID may be
// empty, in which case requests go out unauthenticated.
func NewService(cfg model.LivingAppsConfig, sessionID string) (*Service, error) {
	client, err := NewClient(
		cfg.BaseURL,
		Session{CookieName: cfg.SessionCookie, Value: sessionID},
		time.Duration(cfg.TimeoutSec)*time.Second,
	)
	if err != nil {
		return nil, err
	}
	return &Service{
		client:         client,
		habitsAppID:    cfg.HabitsAppID,
		habitLogsAppID: cfg.HabitLogsAppID,
	}, nil
}

// HabitRef returns the wire reference a habit log uses to point at a habit.
func (s *Service) HabitRef(habitID string) string {
	return Ref{AppID: s.habitsAppID, RecordID: habitID}.Encode(s.client.BaseURL())
}

func recordsPath(appID string) string {
	return "/apps/" + appID + "/records"
}

func recordPath(appID, id string) string {
	return recordsPath(appID) + "/" + id
}

// ListHabits fetches every habit record.
func (s *Service) ListHabits(ctx context.Context) ([]model.Habit, error) {
	var resp map[string]record[habitFields]
	if err := s.client.Get(ctx, recordsPath(s.habitsAppID), &resp); err != nil {
		return nil, fmt.Errorf("fetching habits: %w", err)
	}

	habits := make([]model.Habit, 0, len(resp))
	for id, rec := range resp {
		habits = append(habits, toHabit(id, rec.Fields))
	}
	sort.Slice(habits, func(i, j int) bool {
		return habits[i].ID < habits[j].ID
	})
	return habits, nil
}

// GetHabit fetches a single habit record.
func (s *Service) GetHabit(ctx context.Context, id string) (model.Habit, error) {
	var rec record[habitFields]
	if err := s.client.Get(ctx, recordPath(s.habitsAppID, id), &rec); err != nil {
		return model.Habit{}, fmt.Errorf("fetching habit %s: %w", id, err)
	}
	return toHabit(id, rec.Fields), nil
}

// CreateHabit creates a habit record. The returned ID is empty when the
// backend does not report one.
func (s *Service) CreateHabit(
	ctx context.Context,
	fields model.HabitFields,
) (model.CreateResult, error) {
	var resp createResponse
	body := fieldsBody[habitFields]{Fields: fromHabitFields(fields)}
	if err := s.client.Post(ctx, recordsPath(s.habitsAppID), body, &resp); err != nil {
		return model.CreateResult{}, fmt.Errorf("creating habit: %w", err)
	}
	return resp.result(), nil
}

// UpdateHabit sends a partial update of a habit record.
func (s *Service) UpdateHabit(
	ctx context.Context,
	id string,
	patch model.HabitPatch,
) error {
	body := fieldsBody[habitPatchFields]{Fields: fromHabitPatch(patch)}
	if err := s.client.Patch(ctx, recordPath(s.habitsAppID, id), body, nil); err != nil {
		return fmt.Errorf("updating habit %s: %w", id, err)
	}
	return nil
}

// DeleteHabit removes a habit record. Logs pointing at it are left alone.
func (s *Service) DeleteHabit(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, recordPath(s.habitsAppID, id)); err != nil {
		return fmt.Errorf("deleting habit %s: %w", id, err)
	}
	return nil
}

// ListHabitLogs fetches every habit log record.
func (s *Service) ListHabitLogs(ctx context.Context) ([]model.HabitLog, error) {
	var resp map[string]record[habitLogFields]
	if err := s.client.Get(ctx, recordsPath(s.habitLogsAppID), &resp); err != nil {
		return nil, fmt.Errorf("fetching habit logs: %w", err)
	}

	logs := make([]model.HabitLog, 0, len(resp))
	for id, rec := range resp {
		logs = append(logs, toHabitLog(id, rec.Fields))
	}
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].ID < logs[j].ID
	})
	return logs, nil
}

// GetHabitLog fetches a single habit log record.
func (s *Service) GetHabitLog(ctx context.Context, id string) (model.HabitLog, error) {
	var rec record[habitLogFields]
	if err := s.client.Get(ctx, recordPath(s.habitLogsAppID, id), &rec); err != nil {
		return model.HabitLog{}, fmt.Errorf("fetching habit log %s: %w", id, err)
	}
	return toHabitLog(id, rec.Fields), nil
}

// CreateHabitLog creates a habit log record pointing at fields.HabitID.
func (s *Service) CreateHabitLog(
	ctx context.Context,
	fields model.HabitLogFields,
) (model.CreateResult, error) {
	var resp createResponse
	body := fieldsBody[habitLogFields]{Fields: habitLogFields{
		HabitID:   s.HabitRef(fields.HabitID),
		Date:      string(fields.Date),
		Completed: fields.Completed,
		Notes:     fields.Notes,
	}}
	if err := s.client.Post(ctx, recordsPath(s.habitLogsAppID), body, &resp); err != nil {
		return model.CreateResult{}, fmt.Errorf("creating habit log: %w", err)
	}
	return resp.result(), nil
}

// UpdateHabitLog sends a partial update of a habit log record.
func (s *Service) UpdateHabitLog(
	ctx context.Context,
	id string,
	patch model.HabitLogPatch,
) error {
	body := fieldsBody[habitLogPatchFields]{Fields: fromHabitLogPatch(patch)}
	if err := s.client.Patch(ctx, recordPath(s.habitLogsAppID, id), body, nil); err != nil {
		return fmt.Errorf("updating habit log %s: %w", id, err)
	}
	return nil
}

// DeleteHabitLog removes a habit log record.
func (s *Service) DeleteHabitLog(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, recordPath(s.habitLogsAppID, id)); err != nil {
		return fmt.Errorf("deleting habit log %s: %w", id, err)
	}
	return nil
}

func (r createResponse) result() model.CreateResult {
	if r.ID != "" {
		return model.CreateResult{ID: r.ID}
	}
	id, _ := ExtractRecordID(r.URL)
	return model.CreateResult{ID: id}
}
