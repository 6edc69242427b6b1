package week

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/mnogodumalon/habits/internal/dashboard"
	"github.com/mnogodumalon/habits/internal/model"
	"github.com/mnogodumalon/habits/internal/theme"
)

// Model renders the Monday to Sunday strip around the selected day.
type Model struct {
	grid     []dashboard.WeekDay
	selected model.Day
	today    model.Day
	bar      progress.Model
	width    int
}

// New creates a week strip of the given width.
func New(width int) Model {
	m := Model{
		bar: progress.New(
			progress.WithSolidFill(string(theme.ColorGreen.Dark)),
			progress.WithoutPercentage(),
		),
	}
	m.SetWidth(width)
	return m
}

// SetWeek replaces the grid shown and the days to highlight.
func (m *Model) SetWeek(grid []dashboard.WeekDay, selected, today model.Day) {
	m.grid = grid
	m.selected = selected
	m.today = today
}

// SetWidth updates the strip width.
func (m *Model) SetWidth(width int) {
	m.width = width
	m.bar.Width = max(m.columnWidth()-2, 3)
}

// Title is the heading above the strip: "Today" or the long date label.
func Title(selected, today model.Day) string {
	if selected == today {
		return "Today"
	}
	return selected.Label()
}

// View renders the heading and one column per weekday.
func (m Model) View() string {
	if len(m.grid) == 0 {
		return ""
	}

	cols := make([]string, len(m.grid))
	for i, wd := range m.grid {
		cols[i] = m.renderDay(wd)
	}

	title := lipgloss.NewStyle().Bold(true).Render(Title(m.selected, m.today))
	strip := lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	return lipgloss.JoinVertical(lipgloss.Left, title, strip)
}

func (m Model) columnWidth() int {
	return max(m.width/7, 5)
}

func (m Model) renderDay(wd dashboard.WeekDay) string {
	t, _ := wd.Day.Time()
	name := t.Weekday().String()[:3]
	num := fmt.Sprintf("%d", t.Day())

	header := theme.DimmedStyle
	switch wd.Day {
	case m.selected:
		header = theme.SelectedDayStyle
	case m.today:
		header = theme.TodayStyle
	}

	future := m.today.Valid() && wd.Day > m.today
	rate := theme.RateStyle(wd.CompletionRate).Render(fmt.Sprintf("%d%%", wd.CompletionRate))
	bar := m.bar.ViewAs(float64(wd.CompletionRate) / 100)
	if future {
		rate = theme.DimmedStyle.Render("·")
		bar = theme.DimmedStyle.Render(strings.Repeat("─", m.bar.Width))
	}

	return lipgloss.NewStyle().
		Width(m.columnWidth()).
		Align(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center,
			header.Render(" "+name+" "),
			num,
			rate,
			bar,
		))
}
