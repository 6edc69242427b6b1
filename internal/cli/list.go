package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mnogodumalon/habits/internal/dashboard"
	"github.com/mnogodumalon/habits/internal/model"
)

// habitRow is one line of `habits list`.
type habitRow struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	Completed bool   `json:"completed"`
	Streak    int    `json:"streak"`
}

func newListCmd(f *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List habits and whether they are done for the day",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := load(cmd.Context(), f)
			if err != nil {
				return err
			}
			defer e.Close()

			rows := habitRows(e.dash.Snapshot(), e.dash.SelectedDate(), e.dash.Today())
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			printRows(cmd.OutOrStdout(), rows, e.dash.SelectedDate(), e.dash.Today())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func habitRows(snap dashboard.Snapshot, day, today model.Day) []habitRow {
	rows := make([]habitRow, 0, len(snap.Habits))
	for _, h := range snap.Habits {
		rows = append(rows, habitRow{
			ID:        h.ID,
			Name:      h.Name,
			Icon:      h.DisplayIcon(),
			Completed: snap.IsCompleted(h.ID, day),
			Streak:    snap.Streak(h.ID, today),
		})
	}
	return rows
}

func printRows(w io.Writer, rows []habitRow, day, today model.Day) {
	fmt.Fprintln(w, dayHeading(day, today))
	if len(rows) == 0 {
		fmt.Fprintln(w, "No habits yet. Create your first habit to get started!")
		return
	}
	for _, r := range rows {
		check := "[ ]"
		if r.Completed {
			check = "[x]"
		}
		streak := ""
		if r.Streak > 0 {
			streak = fmt.Sprintf("  🔥 %d", r.Streak)
		}
		fmt.Fprintf(w, "%s %s %s%s  (%s)\n", check, r.Icon, r.Name, streak, r.ID)
	}
}

func dayHeading(day, today model.Day) string {
	if day == today {
		return "Today, " + day.Label()
	}
	return day.Label()
}
