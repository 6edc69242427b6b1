package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mnogodumalon/habits/internal/model"
)

func newAddCmd(f *globalFlags) *cobra.Command {
	draft := model.HabitDraft{
		Color: model.DefaultHabitColor,
		Icon:  model.DefaultHabitIcon,
	}

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a daily habit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft.Name = strings.Join(args, " ")

			e, err := load(cmd.Context(), f)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.dash.AddHabit(cmd.Context(), draft); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n", draft.Icon, strings.TrimSpace(draft.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&draft.Description, "description", "", "optional description")
	cmd.Flags().StringVar(&draft.Color, "color", draft.Color, "hex color, e.g. "+strings.Join(model.HabitColorValues()[:3], ", "))
	cmd.Flags().StringVar(&draft.Icon, "icon", draft.Icon, "emoji icon, e.g. "+strings.Join(model.HabitIcons[:4], " "))
	return cmd
}
