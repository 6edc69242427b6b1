package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDayInput(t *testing.T) {
	now := time.Date(2026, time.October, 15, 9, 0, 0, 0, time.Local)

	tests := []struct {
		name  string
		input string
		want  Day
	}{
		{"empty_is_today", "", "2026-10-15"},
		{"today", "Today", "2026-10-15"},
		{"iso", "2026-02-01", "2026-02-01"},
		{"yesterday", "yesterday", "2026-10-14"},
		{"relative", "3 days ago", "2026-10-12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDayInput(tt.input, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDayInputRejectsGarbage(t *testing.T) {
	_, err := ParseDayInput("zzqx vvbn", time.Now())
	assert.Error(t, err)
}
