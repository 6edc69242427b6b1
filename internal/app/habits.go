package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mnogodumalon/habits/internal/dashboard"
	"github.com/mnogodumalon/habits/internal/model"
	"github.com/mnogodumalon/habits/internal/ui/command"
)

// requestTimeout bounds a single toggle or create round trip.
const requestTimeout = 30 * time.Second

// habitToggledMsg is sent after a completion toggle finishes.
type habitToggledMsg struct {
	habitID string
	err     error
}

// habitAddedMsg is sent after a new habit is persisted.
type habitAddedMsg struct {
	name string
	err  error
}

// toggleHabit flips the completion of habitID on day.
func (m *Model) toggleHabit(habitID string, day model.Day) tea.Cmd {
	d := m.dash
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := d.ToggleCompletion(ctx, habitID, day)
		return habitToggledMsg{habitID: habitID, err: err}
	}
}

// addHabit creates a habit from the submitted form.
func (m *Model) addHabit(draft model.HabitDraft) tea.Cmd {
	d := m.dash
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := d.AddHabit(ctx, draft)
		return habitAddedMsg{name: strings.TrimSpace(draft.Name), err: err}
	}
}

// refresh asks the refresher for an immediate reload.
func (m *Model) refresh() tea.Cmd {
	m.busy = true
	m.setStatus("Refreshing...")
	m.refresher.Refresh()
	return m.spinner.Tick
}

// executeCommand runs a command from the palette.
func (m *Model) executeCommand(c command.CommandMsg) tea.Cmd {
	switch c.Name {
	case "today", "t":
		m.dash.SelectDate(m.dash.Today())
		return m.syncViews()

	case "goto", "go", "g", "date":
		day, err := model.ParseDayInput(c.Arg, time.Now())
		if err != nil {
			m.setError(err)
			return nil
		}
		m.dash.SelectDate(day)
		return m.syncViews()

	case "new", "add":
		if !m.loaded {
			m.setError(dashboard.ErrNotReady)
			return nil
		}
		if c.Arg == "" {
			m.currentView = ViewHabitForm
			return m.formView.Start()
		}
		m.busy = true
		return tea.Batch(m.addHabit(model.HabitDraft{
			Name:  c.Arg,
			Color: model.DefaultHabitColor,
			Icon:  model.DefaultHabitIcon,
		}), m.spinner.Tick)

	case "refresh", "sync", "r":
		return m.refresh()

	case "quit", "q":
		m.refresher.Stop()
		return tea.Quit
	}

	m.setError(fmt.Errorf("unknown command %q, try: %s", c.Name, command.Usage))
	return nil
}
