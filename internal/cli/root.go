package cli

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"jobportal/internal/shared/config"
)

type configKeyType struct{}

var configKey = configKeyType{}

// NewRootCmd builds the jobportal command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "jobportal",
		Short: "Résumé scoring, job search and translation tools",
		Long: `jobportal runs the portal's résumé analysis, job aggregation and
translation from the command line, using the same configuration as the API.`,
		SilenceUsage: true,
	}
	root.AddCommand(
		newScoreCmd(),
		newJobsCmd(),
		newTranslateCmd(),
		NewMigrateCmd(),
	)
	return root
}

// Execute runs the root command with cfg available to every subcommand.
func Execute(ctx context.Context, cfg config.Config) error {
	return NewRootCmd().ExecuteContext(WithConfig(ctx, cfg))
}

// WithConfig attaches cfg for subcommands.
func WithConfig(ctx context.Context, cfg config.Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

func configFromContext(ctx context.Context) config.Config {
	if cfg, ok := ctx.Value(configKey).(config.Config); ok {
		return cfg
	}
	return config.Load()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
