package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mnogodumalon/habits/internal/dashboard"
	"github.com/mnogodumalon/habits/internal/model"
)

func newToggleCmd(f *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle HABIT",
		Aliases: []string{"done", "x"},
		Short:   "Flip a habit's completion for the day (by id or name)",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := load(cmd.Context(), f)
			if err != nil {
				return err
			}
			defer e.Close()

			h, err := resolveHabit(e.dash.Snapshot(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			day := e.dash.SelectedDate()
			if err := e.dash.ToggleCompletion(cmd.Context(), h.ID, day); err != nil {
				return err
			}

			state := "not done"
			if e.dash.Snapshot().IsCompleted(h.ID, day) {
				state = "done"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s for %s\n",
				h.DisplayIcon(), h.Name, state, dayHeading(day, e.dash.Today()))
			return nil
		},
	}
}

// resolveHabit finds a habit by exact id, then by case-insensitive name.
func resolveHabit(snap dashboard.Snapshot, query string) (model.Habit, error) {
	query = strings.TrimSpace(query)
	if h, ok := snap.Habit(query); ok {
		return h, nil
	}

	var matches []model.Habit
	for _, h := range snap.Habits {
		if strings.EqualFold(h.Name, query) {
			matches = append(matches, h)
		}
	}

	switch len(matches) {
	case 0:
		return model.Habit{}, fmt.Errorf("no habit matches %q", query)
	case 1:
		return matches[0], nil
	default:
		return model.Habit{}, fmt.Errorf("%d habits are named %q, use the id instead", len(matches), query)
	}
}
