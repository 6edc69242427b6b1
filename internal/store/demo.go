package store

import (
	"context"
	"fmt"

	"github.com/mnogodumalon/habits/internal/model"
)

type demoHabit struct {
	name, description, color, icon string

	// pattern marks completed days walking back from today; index 0 is today.
	pattern string
}

var demoHabits = []demoHabit{
	{"Meditate", "Ten minutes after waking up", "#8B5CF6", "🧘", "-xxxxx-xxxx"},
	{"Read", "At least 20 pages", "#3B82F6", "📚", "xxx-xx-x-xxx"},
	{"Drink water", "Eight glasses", "#06B6D4", "💧", "xxxxxxxxxxxxxx"},
	{"Workout", "", "#EF4444", "💪", "--x-x--x-x"},
}

// SeedDemo fills s with a handful of habits and two weeks of logs ending
// at today. Days marked '-' get no log at all.
func SeedDemo(ctx context.Context, s Store, today model.Day) error {
	for _, d := range demoHabits {
		res, err := s.CreateHabit(ctx, model.HabitFields{
			Name:        d.name,
			Description: d.description,
			Frequency:   model.FrequencyDaily,
			TargetCount: 1,
			Color:       d.color,
			Icon:        d.icon,
			CreatedAt:   today.AddDays(-len(d.pattern)),
		})
		if err != nil {
			return fmt.Errorf("seeding habit %q: %w", d.name, err)
		}

		for i, mark := range d.pattern {
			if mark == '-' {
				continue
			}
			_, err := s.CreateHabitLog(ctx, model.HabitLogFields{
				HabitID:   res.ID,
				Date:      today.AddDays(-i),
				Completed: true,
			})
			if err != nil {
				return fmt.Errorf("seeding log for %q: %w", d.name, err)
			}
		}
	}
	return nil
}
