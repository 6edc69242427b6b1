package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mnogodumalon/habits/internal/model"
)

func newConfigCmd(f *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or write the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(f, false)
			if err != nil {
				return err
			}
			printConfig(cmd, f.resolvedConfigPath(), cfg)
			return nil
		},
	}

	cmd.AddCommand(newConfigInitCmd(f))
	return cmd
}

func newConfigInitCmd(f *globalFlags) *cobra.Command {
	var (
		baseURL    string
		habitsApp  string
		logsApp    string
		refreshSec int
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file, keeping values not given as flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(f, false)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("base-url") {
				cfg.LivingApps.BaseURL = baseURL
			}
			if flags.Changed("habits-app") {
				cfg.LivingApps.HabitsAppID = habitsApp
			}
			if flags.Changed("logs-app") {
				cfg.LivingApps.HabitLogsAppID = logsApp
			}
			if flags.Changed("refresh") {
				cfg.Display.RefreshIntervalSec = refreshSec
			}
			if flags.Changed("no-cache") {
				cfg.Cache.Enabled = !noCache
			}

			path := f.resolvedConfigPath()
			if err := model.SaveConfig(path, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&baseURL, "base-url", model.DefaultBaseURL, "Living Apps REST root")
	fl.StringVar(&habitsApp, "habits-app", model.DefaultHabitsAppID, "app id of the habits collection")
	fl.StringVar(&logsApp, "logs-app", model.DefaultHabitLogsAppID, "app id of the habit logs collection")
	fl.IntVar(&refreshSec, "refresh", 120, "dashboard refresh interval in seconds, 0 to disable")
	fl.BoolVar(&noCache, "no-cache", false, "disable the local snapshot used by --offline")
	return cmd
}

func printConfig(cmd *cobra.Command, path string, cfg *model.AppConfig) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "config:          %s\n", path)
	fmt.Fprintf(w, "base url:        %s\n", cfg.LivingApps.BaseURL)
	fmt.Fprintf(w, "habits app:      %s\n", cfg.LivingApps.HabitsAppID)
	fmt.Fprintf(w, "habit logs app:  %s\n", cfg.LivingApps.HabitLogsAppID)
	fmt.Fprintf(w, "timeout:         %ds\n", cfg.LivingApps.TimeoutSec)
	fmt.Fprintf(w, "refresh:         %ds\n", cfg.Display.RefreshIntervalSec)
	if cfg.Cache.Enabled {
		fmt.Fprintf(w, "cache:           %s\n", cfg.Cache.Path)
	} else {
		fmt.Fprintln(w, "cache:           disabled")
	}
}
