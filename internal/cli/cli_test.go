package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnogodumalon/habits/internal/dashboard"
	"github.com/mnogodumalon/habits/internal/model"
)

const today model.Day = "2026-10-15"

// isolate points every XDG directory at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("HABITS_SESSION", "")
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestDemoList(t *testing.T) {
	isolate(t)

	out, err := run(t, "--demo", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Today")
	assert.Contains(t, out, "Meditate")
	assert.Contains(t, out, "Drink water")
}

func TestDemoToggleByName(t *testing.T) {
	isolate(t)

	out, err := run(t, "--demo", "toggle", "drink WATER")
	require.NoError(t, err)
	assert.Contains(t, out, "Drink water: not done")
}

func TestToggleUnknownHabit(t *testing.T) {
	isolate(t)

	_, err := run(t, "--demo", "toggle", "juggling")
	assert.EqualError(t, err, `no habit matches "juggling"`)
}

func TestDemoAdd(t *testing.T) {
	isolate(t)

	out, err := run(t, "--demo", "add", "Stretch", "--icon", "🧘")
	require.NoError(t, err)
	assert.Equal(t, "Added 🧘 Stretch\n", out)
}

func TestRootWithoutTerminalPrintsStats(t *testing.T) {
	isolate(t)

	out, err := run(t, "--demo")
	require.NoError(t, err)
	assert.Contains(t, out, "Completion:")
	assert.Contains(t, out, "Mon  Tue")
}

func TestOfflineAndDemoAreExclusive(t *testing.T) {
	isolate(t)

	_, err := run(t, "--demo", "--offline", "list")
	assert.Error(t, err)
}

func TestOfflineWithEmptyCache(t *testing.T) {
	isolate(t)

	out, err := run(t, "--offline", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No habits yet")

	_, err = run(t, "--offline", "add", "Read")
	assert.ErrorContains(t, err, "offline mode")
}

func TestConfigInitRoundTrip(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "habits.yaml")

	_, err := run(t, "--config", path, "config", "init", "--habits-app", "abc", "--refresh", "0")
	require.NoError(t, err)

	out, err := run(t, "--config", path, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "habits app:      abc")
	assert.Contains(t, out, "refresh:         0s")
	assert.Contains(t, out, model.DefaultHabitLogsAppID)
}

func TestResolveHabit(t *testing.T) {
	snap := dashboard.Snapshot{Habits: []model.Habit{
		{ID: "a1", Name: "Read"},
		{ID: "b2", Name: "Walk"},
		{ID: "c3", Name: "walk"},
	}}

	h, err := resolveHabit(snap, "a1")
	require.NoError(t, err)
	assert.Equal(t, "Read", h.Name)

	h, err = resolveHabit(snap, " read ")
	require.NoError(t, err)
	assert.Equal(t, "a1", h.ID)

	_, err = resolveHabit(snap, "WALK")
	assert.ErrorContains(t, err, "use the id")
}

func TestPrintStats(t *testing.T) {
	snap := dashboard.Snapshot{
		Habits: []model.Habit{{ID: "h1", Name: "Read"}, {ID: "h2", Name: "Walk"}},
		Logs: []model.HabitLog{
			{ID: "l1", HabitID: "h1", Date: today, Completed: true},
			{ID: "l2", HabitID: "h1", Date: today.AddDays(-1), Completed: true},
		},
	}

	var buf bytes.Buffer
	printStats(&buf, snap, today, today)
	out := buf.String()

	assert.Contains(t, out, "Completed:    1/2")
	assert.Contains(t, out, "Completion:   50%")
	assert.Contains(t, out, "Best streak:  2")
	assert.NotContains(t, out, "Perfect day")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	// Friday to Sunday lie in the future.
	assert.True(t, strings.HasSuffix(lines[len(lines)-1], "-    -    -"))
}

func TestPrintStatsPerfectDay(t *testing.T) {
	snap := dashboard.Snapshot{
		Habits: []model.Habit{{ID: "h1", Name: "Read"}},
		Logs:   []model.HabitLog{{ID: "l1", HabitID: "h1", Date: today, Completed: true}},
	}

	var buf bytes.Buffer
	printStats(&buf, snap, today, today)
	assert.Contains(t, buf.String(), "Perfect day! All habits completed!")

	buf.Reset()
	printStats(&buf, dashboard.Snapshot{}, today, today)
	assert.NotContains(t, buf.String(), "Perfect day")
}
