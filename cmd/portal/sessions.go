package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/govhub/helpdesk-portal/internal/worker"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Session store maintenance",
}

var sessionsSweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Delete expired sessions once",
	RunE:  runSessionsSweep,
}

func init() {
	sessionsCmd.AddCommand(sessionsSweepCmd)
}

func runSessionsSweep(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	sessions, err := openSessionStore(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer sessions.close()

	if sessions.expired == nil {
		return errors.New("session store " + cfg.Session.Store + " expires sessions on its own")
	}
	n, err := worker.SweepSessions(cmd.Context(), sessions.expired, logger)
	if err != nil {
		return err
	}
	cmd.Printf("removed %d expired sessions\n", n)
	return nil
}
