package livingapps

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnogodumalon/habits/internal/model"
	"github.com/mnogodumalon/habits/internal/store"
)

const (
	habitsApp = "6980ab411df14e26ef90fad2"
	logsApp   = "6980ab417ea92a137dca8cf8"
)

type capturedRequest struct {
	Method      string
	Path        string
	ContentType string
	Cookie      string
	Body        map[string]json.RawMessage
}

// fakeServer answers every request with the given status and body and
// records what it received.
type fakeServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []capturedRequest
	status   int
	body     string
}

func newFakeServer(t *testing.T, status int, body string) *fakeServer {
	t.Helper()
	fs := &fakeServer{status: status, body: body}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := capturedRequest{
			Method:      r.Method,
			Path:        r.URL.Path,
			ContentType: r.Header.Get("Content-Type"),
		}
		if c, err := r.Cookie("session"); err == nil {
			req.Cookie = c.Value
		}
		data, _ := io.ReadAll(r.Body)
		if len(data) > 0 {
			_ = json.Unmarshal(data, &req.Body)
		}

		fs.mu.Lock()
		fs.requests = append(fs.requests, req)
		fs.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(fs.status)
		_, _ = w.Write([]byte(fs.body))
	}))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeServer) last(t *testing.T) capturedRequest {
	t.Helper()
	fs.mu.Lock()
	defer fs.mu.Unlock()
	require.NotEmpty(t, fs.requests)
	return fs.requests[len(fs.requests)-1]
}

func (fs *fakeServer) service(t *testing.T, session string) *Service {
	t.Helper()
	svc, err := NewService(model.LivingAppsConfig{
		BaseURL:        fs.URL + "/rest",
		HabitsAppID:    habitsApp,
		HabitLogsAppID: logsApp,
		SessionCookie:  "session",
		TimeoutSec:     5,
	}, session)
	require.NoError(t, err)
	return svc
}

var _ store.Store = (*Service)(nil)

func TestListHabitsFlattensAndSorts(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `{
  "bbbbbbbbbbbbbbbbbbbbbbbb": {
    "id": "bbbbbbbbbbbbbbbbbbbbbbbb",
    "createdat": "2026-01-02T10:00:00",
    "updatedat": null,
    "fields": {"name": "Read", "frequency": "daily", "target_count": 1.0, "icon": "📚"}
  },
  "aaaaaaaaaaaaaaaaaaaaaaaa": {
    "createdat": "2026-01-01T09:00:00",
    "fields": {"name": "Meditate", "description": null, "color": "#10B981", "created_at": "2026-01-01"}
  }
}`)
	svc := fs.service(t, "s3cret")

	habits, err := svc.ListHabits(context.Background())
	require.NoError(t, err)
	require.Len(t, habits, 2)

	assert.Equal(t, "aaaaaaaaaaaaaaaaaaaaaaaa", habits[0].ID)
	assert.Equal(t, "Meditate", habits[0].Name)
	assert.Equal(t, "", habits[0].Description)
	assert.Equal(t, "#10B981", habits[0].Color)
	assert.Equal(t, model.Day("2026-01-01"), habits[0].CreatedAt)

	assert.Equal(t, "bbbbbbbbbbbbbbbbbbbbbbbb", habits[1].ID)
	assert.Equal(t, model.FrequencyDaily, habits[1].Frequency)
	assert.Equal(t, 1, habits[1].TargetCount)

	req := fs.last(t)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/rest/apps/"+habitsApp+"/records", req.Path)
	assert.Equal(t, "application/json", req.ContentType)
	assert.Equal(t, "s3cret", req.Cookie)
}

func TestListHabitLogsDecodesReference(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `{
  "cccccccccccccccccccccccc": {
    "fields": {
      "habit_id": "https://my.living-apps.de/rest/apps/`+habitsApp+`/records/aaaaaaaaaaaaaaaaaaaaaaaa",
      "date": "2026-03-01",
      "completed": true
    }
  },
  "dddddddddddddddddddddddd": {
    "fields": {"habit_id": "garbage", "date": "2026-03-01", "completed": false, "notes": "skipped"}
  }
}`)
	svc := fs.service(t, "")

	logs, err := svc.ListHabitLogs(context.Background())
	require.NoError(t, err)
	require.Len(t, logs, 2)

	assert.Equal(t, model.HabitLog{
		ID:        "cccccccccccccccccccccccc",
		HabitID:   "aaaaaaaaaaaaaaaaaaaaaaaa",
		Date:      "2026-03-01",
		Completed: true,
	}, logs[0])
	assert.Equal(t, "", logs[1].HabitID)
	assert.Equal(t, "skipped", logs[1].Notes)

	assert.Empty(t, fs.last(t).Cookie)
}

func TestListEmptyCollection(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `{}`)
	svc := fs.service(t, "")

	habits, err := svc.ListHabits(context.Background())
	require.NoError(t, err)
	assert.Empty(t, habits)
}

func TestCreateHabitLogSendsReference(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `{"id": "eeeeeeeeeeeeeeeeeeeeeeee"}`)
	svc := fs.service(t, "")

	res, err := svc.CreateHabitLog(context.Background(), model.HabitLogFields{
		HabitID:   "aaaaaaaaaaaaaaaaaaaaaaaa",
		Date:      "2026-03-01",
		Completed: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "eeeeeeeeeeeeeeeeeeeeeeee", res.ID)

	req := fs.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/rest/apps/"+logsApp+"/records", req.Path)
	assert.Equal(t, "application/json", req.ContentType)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(req.Body["fields"], &fields))
	assert.Equal(t, fs.URL+"/rest/apps/"+habitsApp+"/records/aaaaaaaaaaaaaaaaaaaaaaaa", fields["habit_id"])
	assert.Equal(t, "2026-03-01", fields["date"])
	assert.Equal(t, true, fields["completed"])
	assert.Equal(t, "", fields["notes"])
}

func TestCreateHabitResultShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"id_field", `{"id": "aaaaaaaaaaaaaaaaaaaaaaaa"}`, "aaaaaaaaaaaaaaaaaaaaaaaa"},
		{"url_field", `{"url": "https://x/rest/apps/a/records/bbbbbbbbbbbbbbbbbbbbbbbb"}`, "bbbbbbbbbbbbbbbbbbbbbbbb"},
		{"bare_string", `"https://x/rest/apps/a/records/cccccccccccccccccccccccc"`, "cccccccccccccccccccccccc"},
		{"opaque", `{"status": "ok"}`, ""},
		{"empty", ``, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFakeServer(t, http.StatusOK, tt.body)
			svc := fs.service(t, "")

			res, err := svc.CreateHabit(context.Background(), model.HabitFields{
				Name:        "Read",
				Frequency:   model.FrequencyDaily,
				TargetCount: 1,
				CreatedAt:   "2026-03-01",
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.ID)

			var fields map[string]interface{}
			require.NoError(t, json.Unmarshal(fs.last(t).Body["fields"], &fields))
			assert.Equal(t, "Read", fields["name"])
			assert.Equal(t, "daily", fields["frequency"])
			assert.Equal(t, float64(1), fields["target_count"])
			assert.Equal(t, "2026-03-01", fields["created_at"])
		})
	}
}

func TestUpdateHabitLogSendsOnlyPatchedFields(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `{}`)
	svc := fs.service(t, "")

	completed := false
	err := svc.UpdateHabitLog(context.Background(), "cccccccccccccccccccccccc",
		model.HabitLogPatch{Completed: &completed})
	require.NoError(t, err)

	req := fs.last(t)
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.Equal(t, "/rest/apps/"+logsApp+"/records/cccccccccccccccccccccccc", req.Path)
	assert.JSONEq(t, `{"completed": false}`, string(req.Body["fields"]))
}

func TestDeleteToleratesEmptyBody(t *testing.T) {
	fs := newFakeServer(t, http.StatusNoContent, ``)
	svc := fs.service(t, "")

	require.NoError(t, svc.DeleteHabit(context.Background(), "aaaaaaaaaaaaaaaaaaaaaaaa"))

	req := fs.last(t)
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, "application/json", req.ContentType)
}

func TestGetHabit(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `{"id": "aaaaaaaaaaaaaaaaaaaaaaaa", "fields": {"name": "Walk"}}`)
	svc := fs.service(t, "")

	h, err := svc.GetHabit(context.Background(), "aaaaaaaaaaaaaaaaaaaaaaaa")
	require.NoError(t, err)
	assert.Equal(t, "Walk", h.Name)
	assert.Equal(t, "/rest/apps/"+habitsApp+"/records/aaaaaaaaaaaaaaaaaaaaaaaa", fs.last(t).Path)
}

func TestNonSuccessStatusCarriesBody(t *testing.T) {
	fs := newFakeServer(t, http.StatusInternalServerError, "database unavailable\n")
	svc := fs.service(t, "")

	_, err := svc.ListHabits(context.Background())
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Equal(t, http.MethodGet, statusErr.Method)
	assert.Equal(t, "database unavailable", statusErr.Body)
	assert.True(t, strings.Contains(err.Error(), "fetching habits"))
	assert.False(t, IsAuthError(err))

	// Exactly one attempt.
	fs.mu.Lock()
	assert.Len(t, fs.requests, 1)
	fs.mu.Unlock()
}

func TestAuthErrors(t *testing.T) {
	for _, code := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		fs := newFakeServer(t, code, `{"detail": "not logged in"}`)
		svc := fs.service(t, "expired")

		_, err := svc.ListHabitLogs(context.Background())
		require.Error(t, err)
		assert.True(t, IsAuthError(err), "status %d", code)

		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, code, statusErr.StatusCode)
	}
}

func TestIsNotFound(t *testing.T) {
	fs := newFakeServer(t, http.StatusNotFound, `not found`)
	svc := fs.service(t, "")

	_, err := svc.GetHabitLog(context.Background(), "cccccccccccccccccccccccc")
	assert.True(t, IsNotFound(err))
}

func TestTransportError(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `{}`)
	svc := fs.service(t, "")
	fs.Close()

	_, err := svc.ListHabits(context.Background())
	require.Error(t, err)

	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}
