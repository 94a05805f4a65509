package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"jobportal/internal/shared/config"
	"jobportal/internal/translate"
)

func newTranslator(cfg config.Config) *translate.Service {
	var provider translate.Provider
	if strings.TrimSpace(cfg.TranslateAPIKey) != "" {
		provider = translate.NewGoogle(cfg.TranslateAPIKey, cfg.TranslateBaseURL)
	}
	return translate.NewService(provider, nil)
}

func newTranslateCmd() *cobra.Command {
	var target string
	cmd := &cobra.Command{
		Use:   "translate <text>...",
		Short: "Translate text, falling back to the input when translation is unavailable",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context())
			out := newTranslator(cfg).Translate(cmd.Context(), strings.Join(args, " "), target)
			_, err := fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVarP(&target, "target", "t", translate.DefaultTarget, "target language code")
	return cmd
}
