package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/99designs/keyring"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/mnogodumalon/habits/internal/credential"
	"github.com/mnogodumalon/habits/internal/livingapps"
)

func newLoginCmd(f *globalFlags) *cobra.Command {
	var skipVerify bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store a Living Apps session id in the system keyring",
		Long: `Store a Living Apps session id in the system keyring.

Copy the value of the session cookie from a logged-in browser. When stdin
is not a terminal the id is read from its first line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(f, false)
			if err != nil {
				return err
			}

			session, err := readSession(cmd)
			if err != nil {
				return err
			}

			if !skipVerify {
				svc, err := livingapps.NewService(cfg.LivingApps, session)
				if err != nil {
					return err
				}
				habits, err := svc.ListHabits(cmd.Context())
				if err != nil {
					return fmt.Errorf("verifying session: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Session works, %d habits visible.\n", len(habits))
			}

			if err := credential.Set(credential.SessionKey, session); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Session stored.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipVerify, "no-verify", false, "store without checking the session against Living Apps")
	return cmd
}

func readSession(cmd *cobra.Command) (string, error) {
	var session string

	if isTerminal(cmd.InOrStdin()) {
		err := huh.NewInput().
			Title("Living Apps session id").
			EchoMode(huh.EchoModePassword).
			Value(&session).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("session id is required")
				}
				return nil
			}).
			Run()
		if err != nil {
			return "", err
		}
	} else {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return "", errors.New("no session id on stdin")
		}
		session = line
	}

	session = strings.TrimSpace(session)
	if session == "" {
		return "", errors.New("session id is required")
	}
	return session, nil
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored session id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := credential.Delete(credential.SessionKey)
			if errors.Is(err, keyring.ErrKeyNotFound) || errors.Is(err, os.ErrNotExist) {
				fmt.Fprintln(cmd.OutOrStdout(), "No session stored.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Session removed.")
			return nil
		},
	}
}
