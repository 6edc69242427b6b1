package dashboard

import (
	"math"

	"github.com/mnogodumalon/habits/internal/model"
)

// MaxStreakDays bounds how far back a streak walk looks.
const MaxStreakDays = 365

// Snapshot is an immutable view of the loaded habit and habit log
// collections. All derived statistics are computed from it.
type Snapshot struct {
	Habits []model.Habit
	Logs   []model.HabitLog
}

// WeekDay is one column of the week grid.
type WeekDay struct {
	Day            model.Day
	CompletionRate int
}

// Summary backs the four stat cards.
type Summary struct {
	TotalHabits    int
	CompletedToday int
	CompletionRate int
	LongestStreak  int
}

// Perfect reports whether every habit was completed on the summarized day.
func (s Summary) Perfect() bool {
	return s.TotalHabits > 0 && s.CompletionRate == 100
}

// HasHabit reports whether habitID is in the loaded collection.
func (s Snapshot) HasHabit(habitID string) bool {
	_, ok := s.Habit(habitID)
	return ok
}

// Habit returns the loaded habit with the given id.
func (s Snapshot) Habit(habitID string) (model.Habit, bool) {
	for _, h := range s.Habits {
		if h.ID == habitID {
			return h, true
		}
	}
	return model.Habit{}, false
}

// LogsForDate returns the logs whose date equals day exactly.
func (s Snapshot) LogsForDate(day model.Day) []model.HabitLog {
	var out []model.HabitLog
	for _, l := range s.Logs {
		if l.Date == day {
			out = append(out, l)
		}
	}
	return out
}

// LogFor returns the first log for habitID on day in as-loaded order.
func (s Snapshot) LogFor(habitID string, day model.Day) (model.HabitLog, bool) {
	if habitID == "" {
		return model.HabitLog{}, false
	}
	for _, l := range s.Logs {
		if l.Date == day && l.HabitID == habitID {
			return l, true
		}
	}
	return model.HabitLog{}, false
}

// IsCompleted reports whether the first log for habitID on day is
// completed. Habits that are not loaded are never completed.
func (s Snapshot) IsCompleted(habitID string, day model.Day) bool {
	if !s.HasHabit(habitID) {
		return false
	}
	l, ok := s.LogFor(habitID, day)
	return ok && l.Completed
}

// Streak counts consecutive days with a completed log for habitID,
// walking back from ref. A missing entry on ref itself does not end the
// walk; a gap on any earlier day does.
func (s Snapshot) Streak(habitID string, ref model.Day) int {
	if !s.HasHabit(habitID) {
		return 0
	}

	done := make(map[model.Day]bool)
	for _, l := range s.Logs {
		if l.HabitID == habitID && l.Completed {
			done[l.Date] = true
		}
	}
	if len(done) == 0 {
		return 0
	}

	streak := 0
	for i := 0; i < MaxStreakDays; i++ {
		day := ref.AddDays(-i)
		if day == "" {
			break
		}
		if done[day] {
			streak++
		} else if i > 0 {
			break
		}
	}
	return streak
}

// CompletedCount is the number of loaded habits completed on day.
func (s Snapshot) CompletedCount(day model.Day) int {
	n := 0
	for _, h := range s.Habits {
		if s.IsCompleted(h.ID, day) {
			n++
		}
	}
	return n
}

// CompletionRate is the rounded percentage of loaded habits completed on
// day, or 0 when there are none.
func (s Snapshot) CompletionRate(day model.Day) int {
	total := len(s.Habits)
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(s.CompletedCount(day)) / float64(total) * 100))
}

// WeekGrid returns Monday through Sunday of the week containing anchor.
func (s Snapshot) WeekGrid(anchor model.Day) []WeekDay {
	monday := anchor.StartOfWeek()
	grid := make([]WeekDay, 7)
	for i := range grid {
		day := monday.AddDays(i)
		grid[i] = WeekDay{Day: day, CompletionRate: s.CompletionRate(day)}
	}
	return grid
}

// LongestStreak is the highest streak across loaded habits.
func (s Snapshot) LongestStreak(ref model.Day) int {
	longest := 0
	for _, h := range s.Habits {
		if n := s.Streak(h.ID, ref); n > longest {
			longest = n
		}
	}
	return longest
}

// Summary computes the stat card values for day. Streaks are measured
// from streakRef, which is normally today regardless of the day shown.
func (s Snapshot) Summary(day, streakRef model.Day) Summary {
	return Summary{
		TotalHabits:    len(s.Habits),
		CompletedToday: s.CompletedCount(day),
		CompletionRate: s.CompletionRate(day),
		LongestStreak:  s.LongestStreak(streakRef),
	}
}
