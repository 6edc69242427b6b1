package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mnogodumalon/habits/internal/dashboard"
)

func TestViewShowsSummary(t *testing.T) {
	m := New(60)
	m.SetSummary(dashboard.Summary{
		TotalHabits:    3,
		CompletedToday: 2,
		CompletionRate: 67,
		LongestStreak:  5,
	})

	out := m.View()
	assert.Contains(t, out, "Completed")
	assert.NotContains(t, out, "Perfect day")
	assert.Contains(t, out, "2/3")
	assert.Contains(t, out, "67%")
	assert.Contains(t, out, "5")
	assert.Contains(t, out, "days")
	assert.Contains(t, out, "Habits")
}

func TestViewPerfectDay(t *testing.T) {
	m := New(60)
	m.SetSummary(dashboard.Summary{TotalHabits: 2, CompletedToday: 2, CompletionRate: 100})
	assert.Contains(t, m.View(), "Perfect day! All habits completed!")

	m.SetSummary(dashboard.Summary{CompletionRate: 100})
	assert.NotContains(t, m.View(), "Perfect day")
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "day", plural(1, "day"))
	assert.Equal(t, "days", plural(0, "day"))
	assert.Equal(t, "days", plural(7, "day"))
}
