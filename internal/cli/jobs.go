package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"jobportal/internal/jobs"
	"jobportal/internal/shared/config"
	"jobportal/internal/skills"
)

const jobsTimeout = 45 * time.Second

func newAggregator(cfg config.Config) *jobs.Aggregator {
	return jobs.NewAggregator(
		jobs.NewAdzuna(cfg.AdzunaAppID, cfg.AdzunaAppKey, cfg.AdzunaCountry),
		jobs.NewJSearch(cfg.RapidAPIKey),
		jobs.NewRemoteOK(),
	)
}

func newJobsCmd() *cobra.Command {
	var (
		rawSkills string
		location  string
		source    string
	)
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Search job sources for the given skills",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context())
			wanted := skills.Split(rawSkills)
			if len(wanted) == 0 {
				return fmt.Errorf("--skills is required")
			}
			if strings.TrimSpace(location) == "" {
				location = cfg.JobsDefaultLocation
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), jobsTimeout)
			defer cancel()

			agg := newAggregator(cfg)
			if source == "" {
				return writeJSON(cmd.OutOrStdout(), agg.Aggregate(ctx, wanted, location))
			}
			src, ok := agg.Source(source)
			if !ok {
				return fmt.Errorf("unknown source %q", source)
			}
			return writeJSON(cmd.OutOrStdout(), src.Fetch(ctx, wanted, location))
		},
	}
	cmd.Flags().StringVarP(&rawSkills, "skills", "s", "", "comma-separated skills to search for")
	cmd.Flags().StringVarP(&location, "location", "l", "", "location (defaults to JOBS_DEFAULT_LOCATION)")
	cmd.Flags().StringVar(&source, "source", "", "query a single source: adzuna, jsearch or remoteok")
	return cmd
}
