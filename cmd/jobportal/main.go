package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"jobportal/internal/cli"
	"jobportal/internal/shared/config"
	"jobportal/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.SetLogger(telemetry.New(cfg.LogLevel))
	defer telemetry.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, cfg); err != nil {
		stop()
		telemetry.Sync()
		os.Exit(1)
	}
}
