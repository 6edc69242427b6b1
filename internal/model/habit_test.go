package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHabitColorValues(t *testing.T) {
	values := HabitColorValues()
	assert.Len(t, values, len(HabitColors))
	assert.Equal(t, DefaultHabitColor, values[0])
	for _, v := range values {
		assert.Regexp(t, `^#[0-9A-F]{6}$`, v)
	}
}

func TestHabitDisplayFallbacks(t *testing.T) {
	h := Habit{}
	assert.Equal(t, DefaultHabitColor, h.DisplayColor())

	h.Color = "#10B981"
	assert.Equal(t, "#10B981", h.DisplayColor())
}
