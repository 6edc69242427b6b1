package habitform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mnogodumalon/habits/internal/model"
	"github.com/mnogodumalon/habits/internal/theme"
)

// HabitSubmittedMsg is dispatched when the user submits the form.
type HabitSubmittedMsg struct {
	Draft model.HabitDraft
}

// HabitFormCancelMsg is dispatched when the user cancels the form.
type HabitFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name        string
	description string
	color       string
	icon        string
}

// Model is the Bubble Tea model for the new habit form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	width  int
	height int
}

// New creates a new habit form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{color: model.DefaultHabitColor, icon: model.DefaultHabitIcon},
		width:  width,
		height: height,
	}
}

// Start resets the fields to their defaults and builds a fresh form.
func (m *Model) Start() tea.Cmd {
	m.fb.name = ""
	m.fb.description = ""
	m.fb.color = model.DefaultHabitColor
	m.fb.icon = model.DefaultHabitIcon
	m.form = m.buildForm()
	return m.form.Init()
}

// Active reports whether a form is in progress.
func (m Model) Active() bool {
	return m.form != nil && m.form.State == huh.StateNormal
}

// Update handles messages for the habit form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return HabitFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the habit form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("New Habit") + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("e.g. Drink 8 glasses of water").
				Value(&m.fb.name).
				Validate(validateRequired("Name")),
			huh.NewText().
				Title("Description").
				Placeholder("Optional details...").
				Value(&m.fb.description),
			huh.NewSelect[string]().
				Title("Color").
				Options(colorOptions()...).
				Value(&m.fb.color),
			huh.NewSelect[string]().
				Title("Icon").
				Options(iconOptions()...).
				Value(&m.fb.icon),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func colorOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(model.HabitColors))
	for i, c := range model.HabitColors {
		opts[i] = huh.NewOption(theme.HabitStyle(c.Value).Render("●")+" "+c.Label, c.Value)
	}
	return opts
}

func iconOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(model.HabitIcons))
	for i, icon := range model.HabitIcons {
		opts[i] = huh.NewOption(icon, icon)
	}
	return opts
}

// draft returns the current field values.
func (m Model) draft() model.HabitDraft {
	return model.HabitDraft{
		Name:        m.fb.name,
		Description: m.fb.description,
		Color:       m.fb.color,
		Icon:        m.fb.icon,
	}
}

func (m Model) handleSubmit() tea.Cmd {
	d := m.draft()
	return func() tea.Msg { return HabitSubmittedMsg{Draft: d} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}
