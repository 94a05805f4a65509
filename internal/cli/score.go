package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"jobportal/internal/ats"
	"jobportal/internal/extract"
	"jobportal/internal/skills"
)

type scoreOutput struct {
	File   string   `json:"file"`
	Skills []string `json:"skills"`
	ats.Result
}

func newScoreCmd() *cobra.Command {
	var mimeType string
	cmd := &cobra.Command{
		Use:   "score <resume-file>",
		Short: "Extract skills from a résumé and compute its ATS score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read resume: %w", err)
			}
			text, err := extract.FromBytes(cmd.Context(), data, mimeType, filepath.Base(path))
			if err != nil {
				return fmt.Errorf("extract %s: %w", path, err)
			}
			found := skills.Extract(text)
			return writeJSON(cmd.OutOrStdout(), scoreOutput{
				File:   filepath.Base(path),
				Skills: found,
				Result: ats.Score(text, found),
			})
		},
	}
	cmd.Flags().StringVar(&mimeType, "mime", "", "MIME type override (detected from content and extension by default)")
	return cmd
}
