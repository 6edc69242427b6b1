// Package cli provides the habits command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mnogodumalon/habits/internal/logger"
)

// Version information (set at build time via ldflags).
var (
	Version = "dev"
	Commit  = "unknown"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	debug      bool
	offline    bool
	demo       bool
	date       string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	f := &globalFlags{}

	root := &cobra.Command{
		Use:   "habits",
		Short: "Track daily habits from the terminal",
		Long: `habits is a terminal dashboard for daily habits stored in Living Apps.

Without a subcommand it opens the interactive dashboard, or prints the
day's statistics when stdout is not a terminal.

Examples:
  habits
  habits list --date yesterday
  habits toggle meditate
  habits add "Drink water" --icon 💧
  habits stats --date "last monday"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if isTerminal(cmd.OutOrStdout()) {
				return runTUI(cmd, f)
			}
			return runStats(cmd, f)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/habits/config.yaml)")
	pf.BoolVar(&f.debug, "debug", false, "write debug logs")
	pf.BoolVar(&f.offline, "offline", false, "read the last cached snapshot; changes are rejected")
	pf.BoolVar(&f.demo, "demo", false, "use in-memory demo data instead of Living Apps")
	pf.StringVarP(&f.date, "date", "d", "", `day to show, e.g. 2026-10-01, "yesterday", "3 days ago"`)
	root.MarkFlagsMutuallyExclusive("offline", "demo")

	root.AddCommand(
		newListCmd(f),
		newAddCmd(f),
		newToggleCmd(f),
		newStatsCmd(f),
		newLoginCmd(f),
		newLogoutCmd(),
		newConfigCmd(f),
		newVersionCmd(),
	)

	return root
}

// Execute runs the CLI. Failures are printed as "Error: ..." on stderr.
func Execute() error {
	err := NewRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+err.Error())
	}
	_ = logger.Close()
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("habits %s (%s)\n", Version, Commit)
		},
	}
}

// isTerminal reports whether stream is an interactive terminal.
func isTerminal(stream any) bool {
	f, ok := stream.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
