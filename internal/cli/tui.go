package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mnogodumalon/habits/internal/app"
	appsync "github.com/mnogodumalon/habits/internal/sync"
)

func runTUI(cmd *cobra.Command, f *globalFlags) error {
	e, err := openEnv(cmd.Context(), f, true)
	if err != nil {
		return err
	}
	defer e.Close()

	interval := time.Duration(e.cfg.Display.RefreshIntervalSec) * time.Second
	if f.demo || f.offline {
		interval = 0
	}
	r := appsync.New(e.dash, interval)
	defer r.Stop()

	p := tea.NewProgram(app.New(e.dash, r, e.source), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
