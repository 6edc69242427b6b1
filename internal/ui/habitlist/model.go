package habitlist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mnogodumalon/habits/internal/dashboard"
	"github.com/mnogodumalon/habits/internal/keys"
	"github.com/mnogodumalon/habits/internal/model"
	"github.com/mnogodumalon/habits/internal/theme"
)

// EmptyMessage is shown when no habits exist yet.
const EmptyMessage = "No habits yet. Create your first habit to get started!"

// Model is the habit list view component.
type Model struct {
	list   list.Model
	keys   *keys.KeyMap
	width  int
	height int
}

// New creates a new habit list model.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height)
	l.Title = "Habits"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(true)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		keys:   k,
		width:  width,
		height: height,
	}
}

// SetSnapshot rebuilds the rows for day. Streaks are measured from
// today. The cursor stays on the same habit when it still exists.
func (m *Model) SetSnapshot(snap dashboard.Snapshot, day, today model.Day) tea.Cmd {
	selectedID := ""
	if h, ok := m.SelectedHabit(); ok {
		selectedID = h.ID
	}

	items := make([]list.Item, len(snap.Habits))
	cursor := 0
	for i, h := range snap.Habits {
		items[i] = HabitItem{
			Habit:     h,
			Completed: snap.IsCompleted(h.ID, day),
			Streak:    snap.Streak(h.ID, today),
		}
		if h.ID == selectedID {
			cursor = i
		}
	}

	cmd := m.list.SetItems(items)
	m.list.Select(cursor)
	m.list.Title = "Habits · " + dayTitle(day, today)
	return cmd
}

// SelectedHabit returns the habit under the cursor.
func (m Model) SelectedHabit() (model.Habit, bool) {
	item, ok := m.list.SelectedItem().(HabitItem)
	if !ok {
		return model.Habit{}, false
	}
	return item.Habit, true
}

// Len returns the number of rows.
func (m Model) Len() int {
	return len(m.list.Items())
}

// Update moves the cursor. Other keys are handled by the parent.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Down):
		m.list.CursorDown()
	case key.Matches(keyMsg, m.keys.Up):
		m.list.CursorUp()
	}
	return m, nil
}

// View renders the list, or the empty state when there are no habits.
func (m Model) View() string {
	if m.Len() == 0 {
		title := m.list.Styles.Title.Render(m.list.Title)
		body := theme.DimmedStyle.
			Width(m.width).
			Align(lipgloss.Center).
			PaddingTop(2).
			Render(EmptyMessage + "\n\nPress n to add one.")
		return lipgloss.JoinVertical(lipgloss.Left, title, body)
	}
	return m.list.View()
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height)
}

func dayTitle(day, today model.Day) string {
	switch day {
	case today:
		return "Today"
	case today.AddDays(-1):
		return "Yesterday"
	}
	return day.Label()
}
