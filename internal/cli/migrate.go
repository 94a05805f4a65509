package cli

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"jobportal/internal/shared/storage/db"
	"jobportal/internal/shared/telemetry"
)

// NewMigrateCmd manages the database schema. With no subcommand it applies
// pending migrations.
func NewMigrateCmd() *cobra.Command {
	up := func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, sqlDB *sql.DB) error {
			if err := db.RunMigrations(ctx, sqlDB); err != nil {
				return err
			}
			return reportVersion(ctx, cmd, sqlDB)
		})
	}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE:  up,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE:  up,
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDB(cmd, func(ctx context.Context, sqlDB *sql.DB) error {
					if err := db.RollbackMigration(ctx, sqlDB); err != nil {
						return err
					}
					return reportVersion(ctx, cmd, sqlDB)
				})
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDB(cmd, func(ctx context.Context, sqlDB *sql.DB) error {
					return reportVersion(ctx, cmd, sqlDB)
				})
			},
		},
	)
	return cmd
}

func withDB(cmd *cobra.Command, fn func(ctx context.Context, sqlDB *sql.DB) error) error {
	cfg := configFromContext(cmd.Context())
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	ctx := cmd.Context()
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer sqlDB.Close()
	return fn(ctx, sqlDB)
}

func reportVersion(ctx context.Context, cmd *cobra.Command, sqlDB *sql.DB) error {
	version, err := db.MigrationVersion(ctx, sqlDB)
	if err != nil {
		return err
	}
	telemetry.Info("migrate.version", map[string]any{"version": version})
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
	return err
}
