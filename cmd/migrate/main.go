package main

// Run database migrations:
//   go run ./cmd/migrate [up|down|version]

import (
	"context"
	"os"

	"jobportal/internal/cli"
	"jobportal/internal/shared/config"
	"jobportal/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.SetLogger(telemetry.New(cfg.LogLevel))
	defer telemetry.Sync()

	if err := cli.NewMigrateCmd().ExecuteContext(cli.WithConfig(context.Background(), cfg)); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"error": err.Error()})
		telemetry.Sync()
		os.Exit(1)
	}
}
