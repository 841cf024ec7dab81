package main

import (
	"github.com/spf13/cobra"

	"github.com/govhub/helpdesk-portal/internal/persistence"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the Postgres session schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE:  runMigrate(false),
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print migration status",
	RunE:  runMigrate(true),
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
}

func runMigrate(statusOnly bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		pg, err := persistence.NewPostgres(cmd.Context(), cfg.Postgres, logger)
		if err != nil {
			return err
		}
		defer pg.Close()

		if statusOnly {
			return persistence.MigrationStatus(cmd.Context(), pg.PoolHandle(), logger)
		}
		if err := persistence.RunMigrations(cmd.Context(), pg.PoolHandle(), logger); err != nil {
			return err
		}
		cmd.Println("migrate up: ok")
		return nil
	}
}
