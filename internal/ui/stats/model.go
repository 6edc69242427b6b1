package stats

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/mnogodumalon/habits/internal/dashboard"
	"github.com/mnogodumalon/habits/internal/theme"
)

// PerfectDayText is shown once every habit is done for the day.
const PerfectDayText = "🎉 Perfect day! All habits completed!"

// Model renders the four summary cards.
type Model struct {
	summary dashboard.Summary
	bar     progress.Model
	width   int
}

// New creates the stat cards for the given width.
func New(width int) Model {
	m := Model{
		bar: progress.New(progress.WithGradient(
			string(theme.ColorMagenta.Dark),
			string(theme.ColorGreen.Dark),
		)),
	}
	m.SetWidth(width)
	return m
}

// SetSummary replaces the values shown.
func (m *Model) SetSummary(s dashboard.Summary) {
	m.summary = s
}

// SetWidth updates the card area width.
func (m *Model) SetWidth(width int) {
	m.width = width
	m.bar.Width = max(m.cardWidth()-theme.CardStyle.GetHorizontalFrameSize()-5, 5)
}

func (m Model) cardWidth() int {
	return max(m.width/2, 18)
}

// View lays the cards out two by two.
func (m Model) View() string {
	s := m.summary

	done := m.card("Completed", fmt.Sprintf("%d/%d", s.CompletedToday, s.TotalHabits), "habits done")
	rate := m.card("Completion",
		theme.RateStyle(s.CompletionRate).Render(fmt.Sprintf("%d%%", s.CompletionRate)),
		m.bar.ViewAs(float64(s.CompletionRate)/100))
	streak := m.card("Best streak",
		theme.StreakStyle.Render(fmt.Sprintf("🔥 %d", s.LongestStreak)), plural(s.LongestStreak, "day"))
	total := m.card("Habits", fmt.Sprintf("%d", s.TotalHabits), "tracked")

	rows := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, done, rate),
	}
	if s.Perfect() {
		rows = append(rows, theme.PerfectStyle.Render(PerfectDayText))
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, streak, total))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) card(label, value, footer string) string {
	inner := m.cardWidth() - theme.CardStyle.GetHorizontalFrameSize()
	return theme.CardStyle.Width(inner).Render(lipgloss.JoinVertical(lipgloss.Left,
		theme.CardLabelStyle.Render(label),
		theme.CardValueStyle.Render(value),
		theme.DimmedStyle.Render(footer),
	))
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
