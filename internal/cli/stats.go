package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mnogodumalon/habits/internal/dashboard"
	"github.com/mnogodumalon/habits/internal/model"
)

func newStatsCmd(f *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the day's summary and the week's completion rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, f)
		},
	}
}

func runStats(cmd *cobra.Command, f *globalFlags) error {
	e, err := load(cmd.Context(), f)
	if err != nil {
		return err
	}
	defer e.Close()

	printStats(cmd.OutOrStdout(), e.dash.Snapshot(), e.dash.SelectedDate(), e.dash.Today())
	return nil
}

func printStats(w io.Writer, snap dashboard.Snapshot, day, today model.Day) {
	s := snap.Summary(day, today)

	fmt.Fprintln(w, dayHeading(day, today))
	fmt.Fprintf(w, "  Completed:    %d/%d\n", s.CompletedToday, s.TotalHabits)
	fmt.Fprintf(w, "  Completion:   %d%%\n", s.CompletionRate)
	fmt.Fprintf(w, "  Best streak:  %d\n", s.LongestStreak)
	fmt.Fprintf(w, "  Habits:       %d\n", s.TotalHabits)
	if s.Perfect() {
		fmt.Fprintln(w, "  Perfect day! All habits completed!")
	}
	fmt.Fprintln(w)

	grid := snap.WeekGrid(day)
	names := make([]string, len(grid))
	rates := make([]string, len(grid))
	for i, wd := range grid {
		names[i] = fmt.Sprintf("%4s", wd.Day.Weekday().String()[:3])
		if wd.Day > today {
			rates[i] = fmt.Sprintf("%4s", "-")
		} else {
			rates[i] = fmt.Sprintf("%3d%%", wd.CompletionRate)
		}
	}
	fmt.Fprintln(w, strings.Join(names, " "))
	fmt.Fprintln(w, strings.Join(rates, " "))
}
