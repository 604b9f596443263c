package cmd

import (
	"context"
	"fmt"

	"turf-booking/pkg/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(migrateAction("up", "Apply all pending migrations", (*database.Migrator).Up))
	cmd.AddCommand(migrateAction("down", "Roll back the latest migration", (*database.Migrator).Down))
	cmd.AddCommand(migrateAction("status", "Print migration status", (*database.Migrator).Status))
	return cmd
}

func migrateAction(use, short string, run func(*database.Migrator, context.Context) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, logger, err := bootstrap("migrate")
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx := cmd.Context()
			db, err := connect(ctx, config, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			migrator, err := database.NewMigrator(db.Pool())
			if err != nil {
				return err
			}
			defer migrator.Close()

			if err := run(migrator, ctx); err != nil {
				return err
			}

			version, err := migrator.Version(ctx)
			if err != nil {
				return err
			}
			logger.Info("Migration command finished", zap.String("action", use), zap.Int64("version", version))
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
			return nil
		},
	}
}
