package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	assert.Equal(t, CommandMsg{Name: "goto", Arg: "last monday"}, Parse("  GoTo last monday "))
	assert.Equal(t, CommandMsg{Name: "today"}, Parse("today"))
	assert.Equal(t, CommandMsg{Name: "new", Arg: "Drink water"}, Parse("new   Drink water"))
}

func TestEnterEmitsCommand(t *testing.T) {
	m := New(80, 24)
	m.Focus()
	m.input.SetValue("goto yesterday")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, CommandMsg{Name: "goto", Arg: "yesterday"}, cmd())
	assert.Empty(t, m.input.Value())
}

func TestEmptyEnterAndEscCancel(t *testing.T) {
	m := New(80, 24)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, CommandCancelMsg{}, cmd())

	m.input.SetValue("ref")
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, CommandCancelMsg{}, cmd())
	assert.Empty(t, m.input.Value())
}
