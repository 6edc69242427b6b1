package habitlist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mnogodumalon/habits/internal/model"
	"github.com/mnogodumalon/habits/internal/theme"
)

// HabitItem is one row of the habit list: the habit plus its state on the
// selected day.
type HabitItem struct {
	Habit     model.Habit
	Completed bool
	Streak    int
}

// FilterValue returns the string used for fuzzy filtering.
func (i HabitItem) FilterValue() string { return i.Habit.Name }

// Title returns the habit name.
func (i HabitItem) Title() string { return i.Habit.Name }

// Description returns the habit description.
func (i HabitItem) Description() string { return i.Habit.Description }

// ItemDelegate implements list.ItemDelegate for habit rows.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single habit row.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	hi, ok := item.(HabitItem)
	if !ok {
		return
	}
	fmt.Fprint(w, renderRow(hi, index == m.Index(), m.Width()))
}

func renderRow(hi HabitItem, selected bool, width int) string {
	color := hi.Habit.DisplayColor()

	check := theme.DimmedStyle.Render("○")
	if hi.Completed {
		check = theme.HabitStyle(color).Bold(true).Render("✓")
	}

	name := hi.Habit.Name
	if hi.Completed {
		name = theme.DimmedStyle.Strikethrough(true).Render(name)
	} else {
		name = theme.HabitStyle(color).Render(name)
	}

	left := strings.Join([]string{check, hi.Habit.DisplayIcon(), name}, " ")
	if hi.Habit.Description != "" {
		left += theme.DimmedStyle.Render("  " + hi.Habit.Description)
	}

	right := ""
	if hi.Streak > 0 {
		right = theme.StreakStyle.Render(fmt.Sprintf("🔥 %d", hi.Streak))
	}

	style := theme.ListItemStyle
	if selected {
		style = theme.SelectedItemStyle
	}

	inner := width - style.GetHorizontalFrameSize()
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return style.Render(left + strings.Repeat(" ", gap) + right)
}
