package habitform

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnogodumalon/habits/internal/model"
)

func TestStartResetsDefaults(t *testing.T) {
	m := New(80, 24)
	m.fb.name = "left over"
	m.fb.color = "#EF4444"

	m.Start()

	assert.True(t, m.Active())
	assert.Equal(t, model.HabitDraft{
		Color: model.DefaultHabitColor,
		Icon:  model.DefaultHabitIcon,
	}, m.draft())
	assert.Contains(t, m.View(), "New Habit")
}

func TestValidateRequired(t *testing.T) {
	v := validateRequired("Name")
	assert.Error(t, v(""))
	assert.Error(t, v("   "))
	assert.NoError(t, v("Read"))
}

func TestOptionsCoverPalette(t *testing.T) {
	assert.Len(t, colorOptions(), len(model.HabitColors))
	assert.Len(t, iconOptions(), len(model.HabitIcons))

	for i, opt := range colorOptions() {
		assert.Equal(t, model.HabitColors[i].Value, opt.Value)
		assert.Contains(t, opt.Key, model.HabitColors[i].Label)
	}
}

func TestSubmitEmitsDraft(t *testing.T) {
	m := New(80, 24)
	m.Start()
	m.fb.name = "Stretch"
	m.fb.icon = "💪"
	m.form.State = huh.StateCompleted

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(HabitSubmittedMsg)
	require.True(t, ok)
	assert.Equal(t, "Stretch", msg.Draft.Name)
	assert.Equal(t, "💪", msg.Draft.Icon)
	assert.Equal(t, model.DefaultHabitColor, msg.Draft.Color)
}

func TestUpdateWithoutFormIsNoop(t *testing.T) {
	m := New(80, 24)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, m.View())
}
