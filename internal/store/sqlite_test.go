package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnogodumalon/habits/internal/model"
	"github.com/mnogodumalon/habits/internal/store"
	"github.com/mnogodumalon/habits/tests/testutil"
)

func TestSQLiteStoreReplaceAndRead(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	_, ok, err := s.SyncedAt(ctx, store.CollectionHabits)
	require.NoError(t, err)
	assert.False(t, ok)

	h := testutil.Habit("bbbbbbbbbbbbbbbbbbbbbbbb", "Read")
	h.Color = "#10B981"
	h.Icon = "📚"
	require.NoError(t, s.ReplaceHabits(ctx, []model.Habit{
		h,
		testutil.Habit("aaaaaaaaaaaaaaaaaaaaaaaa", "Meditate"),
	}))

	habits, err := s.CachedHabits(ctx)
	require.NoError(t, err)
	require.Len(t, habits, 2)
	assert.Equal(t, "Meditate", habits[0].Name)
	assert.Equal(t, h, habits[1])

	_, ok, err = s.SyncedAt(ctx, store.CollectionHabits)
	require.NoError(t, err)
	assert.True(t, ok)

	// A second replace drops rows that are gone remotely.
	require.NoError(t, s.ReplaceHabits(ctx, []model.Habit{h}))
	habits, err = s.CachedHabits(ctx)
	require.NoError(t, err)
	assert.Len(t, habits, 1)
}

func TestSQLiteStoreHabitLogs(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	logs := []model.HabitLog{
		testutil.Log("cccccccccccccccccccccccc", "aaaaaaaaaaaaaaaaaaaaaaaa", "2026-03-01", true),
		testutil.Log("dddddddddddddddddddddddd", "", "2026-03-02", false),
	}
	logs[1].Notes = "orphan"
	require.NoError(t, s.ReplaceHabitLogs(ctx, logs))

	got, err := s.CachedHabitLogs(ctx)
	require.NoError(t, err)
	assert.Equal(t, logs, got)
}

func TestSQLiteStoreEmptyCache(t *testing.T) {
	s := testutil.NewTestStore(t)

	habits, err := s.CachedHabits(context.Background())
	require.NoError(t, err)
	assert.Empty(t, habits)

	logs, err := s.CachedHabitLogs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestSQLiteStoreReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "cache.db")

	s, err := store.NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.ReplaceHabits(ctx, []model.Habit{testutil.Habit("aaaaaaaaaaaaaaaaaaaaaaaa", "Walk")}))
	require.NoError(t, s.Close())

	s, err = store.NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	habits, err := s.CachedHabits(ctx)
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, "Walk", habits[0].Name)
}
