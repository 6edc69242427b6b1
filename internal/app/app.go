package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mnogodumalon/habits/internal/dashboard"
	"github.com/mnogodumalon/habits/internal/keys"
	"github.com/mnogodumalon/habits/internal/livingapps"
	"github.com/mnogodumalon/habits/internal/store"
	appsync "github.com/mnogodumalon/habits/internal/sync"
	"github.com/mnogodumalon/habits/internal/theme"
	"github.com/mnogodumalon/habits/internal/ui"
	"github.com/mnogodumalon/habits/internal/ui/command"
	"github.com/mnogodumalon/habits/internal/ui/habitform"
	"github.com/mnogodumalon/habits/internal/ui/habitlist"
	helpview "github.com/mnogodumalon/habits/internal/ui/help"
	"github.com/mnogodumalon/habits/internal/ui/stats"
	"github.com/mnogodumalon/habits/internal/ui/week"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewDashboard ViewState = iota
	ViewHelp
	ViewHabitForm
	ViewCommand
)

// Model is the root Bubble Tea model that manages view routing, layout,
// and access to the dashboard.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	dash         *dashboard.Dashboard
	refresher    *appsync.Refresher
	keys         *keys.KeyMap
	habitList    habitlist.Model
	weekView     week.Model
	statsView    stats.Model
	formView     habitform.Model
	commandView  command.Model
	helpView     helpview.Model
	spinner      spinner.Model
	source       string
	ready        bool
	loaded       bool
	busy         bool
	status       string
	statusErr    bool
	lastSync     string
}

// New creates the root model. source names where the data comes from and
// is shown in the header.
func New(d *dashboard.Dashboard, r *appsync.Refresher, source string) Model {
	k := keys.DefaultKeyMap()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.ColorMagenta)

	return Model{
		currentView: ViewDashboard,
		dash:        d,
		refresher:   r,
		keys:        k,
		habitList:   habitlist.New(k, 80, 20),
		weekView:    week.New(40),
		statsView:   stats.New(40),
		formView:    habitform.New(80, 24),
		commandView: command.New(80, 24),
		helpView:    helpview.New(k, 80, 24),
		spinner:     sp,
		source:      source,
	}
}

// Init starts the spinner and the background refresher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.refresher.Start(),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		m.resize()
		// Forward to the form so huh can calculate its layout.
		if m.currentView == ViewHabitForm {
			return m.updateActiveView(msg)
		}
		return m, nil

	case spinner.TickMsg:
		if m.loaded && !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case appsync.RefreshResultMsg:
		m.loaded = true
		m.busy = false
		if msg.Error != nil {
			m.setError(msg.Error)
		} else {
			m.lastSync = msg.At.Format("15:04")
			m.clearStatus()
		}
		cmd := tea.Batch(m.syncViews(), m.refresher.WaitForNextResult())
		return m, cmd

	case habitToggledMsg:
		m.busy = false
		if msg.err != nil {
			m.setError(msg.err)
		} else {
			m.clearStatus()
		}
		cmd := m.syncViews()
		return m, cmd

	case habitAddedMsg:
		m.busy = false
		if msg.err != nil {
			m.setError(msg.err)
		} else {
			m.setStatus(fmt.Sprintf("Added %q", msg.name))
		}
		cmd := m.syncViews()
		return m, cmd

	case habitform.HabitSubmittedMsg:
		m.currentView = ViewDashboard
		m.busy = true
		return m, tea.Batch(m.addHabit(msg.Draft), m.spinner.Tick)

	case habitform.HabitFormCancelMsg:
		m.currentView = ViewDashboard
		return m, nil

	case command.CommandMsg:
		m.currentView = ViewDashboard
		cmd := m.executeCommand(msg)
		return m, cmd

	case command.CommandCancelMsg:
		m.currentView = ViewDashboard
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateActiveView(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.refresher.Stop()
		return m, tea.Quit
	}

	// Text inputs own every other key while they are open.
	if m.currentView == ViewHabitForm || m.currentView == ViewCommand {
		return m.updateActiveView(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil
		}
		m.clearStatus()
		return m, nil

	case key.Matches(msg, m.keys.Quit):
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil
		}
		m.refresher.Stop()
		return m, tea.Quit
	}

	if m.currentView != ViewDashboard {
		return m.updateActiveView(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Toggle):
		h, ok := m.habitList.SelectedHabit()
		if !ok {
			return m, nil
		}
		m.busy = true
		return m, tea.Batch(m.toggleHabit(h.ID, m.dash.SelectedDate()), m.spinner.Tick)

	case key.Matches(msg, m.keys.NewHabit):
		if !m.loaded {
			m.setError(dashboard.ErrNotReady)
			return m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewHabitForm
		cmd := m.formView.Start()
		return m, cmd

	case key.Matches(msg, m.keys.PrevDay):
		m.dash.ShiftDate(-1)
		cmd := m.syncViews()
		return m, cmd

	case key.Matches(msg, m.keys.NextDay):
		m.dash.ShiftDate(1)
		cmd := m.syncViews()
		return m, cmd

	case key.Matches(msg, m.keys.PrevWeek):
		m.dash.ShiftDate(-7)
		cmd := m.syncViews()
		return m, cmd

	case key.Matches(msg, m.keys.NextWeek):
		m.dash.ShiftDate(7)
		cmd := m.syncViews()
		return m, cmd

	case key.Matches(msg, m.keys.Today):
		m.dash.SelectDate(m.dash.Today())
		cmd := m.syncViews()
		return m, cmd

	case key.Matches(msg, m.keys.Refresh):
		cmd := m.refresh()
		return m, cmd

	case key.Matches(msg, m.keys.Command):
		m.previousView = m.currentView
		m.currentView = ViewCommand
		cmd := m.commandView.Focus()
		return m, cmd
	}

	return m.updateActiveView(msg)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewDashboard:
		m.habitList, cmd = m.habitList.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewHabitForm:
		m.formView, cmd = m.formView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// syncViews pushes the dashboard state into the sub-views.
func (m *Model) syncViews() tea.Cmd {
	snap := m.dash.Snapshot()
	day := m.dash.SelectedDate()
	today := m.dash.Today()

	m.weekView.SetWeek(snap.WeekGrid(day), day, today)
	m.statsView.SetSummary(snap.Summary(day, today))
	return m.habitList.SetSnapshot(snap, day, today)
}

// resize recomputes sub-view sizes from the layout.
func (m *Model) resize() {
	w := m.layout.ContentWidth()
	h := m.layout.ContentHeight()
	mainW, sideW := m.layout.SplitWidths()

	m.weekView.SetWidth(sideW)
	m.statsView.SetWidth(sideW)
	m.helpView.SetSize(w, h)
	m.formView.SetSize(w, h)
	m.commandView.SetSize(w, h)

	if m.layout.Wide() {
		m.habitList.SetSize(mainW, h)
		return
	}
	side := lipgloss.Height(m.sideView())
	m.habitList.SetSize(mainW, max(h-side, 3))
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = errorText(err)
	m.statusErr = true
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}

// errorText turns an error into a one-line status message.
func errorText(err error) string {
	switch {
	case livingapps.IsAuthError(err):
		return "Session expired: run 'habits login'"
	case errors.Is(err, store.ErrReadOnly):
		return "Offline: changes cannot be saved"
	case errors.Is(err, dashboard.ErrNotReady):
		return "Still loading, try again in a moment"
	}
	return "Error: " + err.Error()
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("🎯 Habit Tracker", m.syncStatus())
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, m.renderContent(), statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewHelp:
		return m.helpView.View()
	case ViewHabitForm:
		return m.formView.View()
	case ViewCommand:
		return m.commandView.View()
	}

	if !m.loaded {
		return lipgloss.NewStyle().
			Width(m.layout.ContentWidth()).
			Align(lipgloss.Center).
			PaddingTop(2).
			Render(m.spinner.View() + " Loading habits...")
	}

	return m.layout.RenderColumns(m.habitList.View(), m.sideView())
}

func (m Model) sideView() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.weekView.View(),
		"",
		m.statsView.View(),
	)
}

// syncStatus returns a short string describing the data source and the
// last reload.
func (m Model) syncStatus() string {
	if !m.loaded || m.busy {
		return m.spinner.View() + " " + m.source
	}
	if m.lastSync == "" {
		return m.source
	}
	return fmt.Sprintf("%s · %s", m.source, m.lastSync)
}

// keyHints returns the status message or keyboard hints for the status bar.
func (m Model) keyHints() string {
	if m.status != "" && m.currentView == ViewDashboard {
		if m.statusErr {
			return theme.ErrorStyle.Render(m.status)
		}
		return m.status
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewHabitForm:
		return "enter submit | esc cancel"
	case ViewCommand:
		return "enter run | esc cancel"
	}

	hints := []string{"q quit", "? help", "space toggle", "n new", "h/l day", "[/] week", "t today", "r refresh", ": command"}
	return strings.Join(hints, " | ")
}
