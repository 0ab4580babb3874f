package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-SitterAvailability/internal/config"
	"github.com/m04kA/SMC-SitterAvailability/migrations"
	"github.com/m04kA/SMC-SitterAvailability/pkg/logger"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate [up|down|version]",
		Short: "Apply or roll back database migrations",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := "up"
			if len(args) == 1 {
				direction = args[0]
			}

			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer log.Close()

			db, err := openDB(cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			migrator, err := migrations.NewMigrator(db, log)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			switch direction {
			case "up":
				return migrator.Up(ctx)
			case "down":
				if err := migrator.Down(ctx); err != nil {
					return err
				}
				log.Info("Migrator: rolled back last migration")
				return nil
			case "version":
				version, err := migrator.Version(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), version)
				return nil
			default:
				return fmt.Errorf("unknown migrate direction %q, expected up, down or version", direction)
			}
		},
	}
	return cmd
}
