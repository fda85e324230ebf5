package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eykd/rubriclint-go/internal/feedback"
)

// ScaffoldRunner abstracts the scaffolding service for the init command.
type ScaffoldRunner interface {
	Scaffold(ctx context.Context, force bool) (*feedback.ScaffoldResult, error)
}

// NewInitCmd creates the init command. The wire function builds a
// ScaffoldRunner for the chosen configuration directory.
func NewInitCmd(wire func(configDir string) (ScaffoldRunner, error)) *cobra.Command {
	var (
		configDir  string
		force      bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create starter feedback configuration files",
		Long: "Init writes starter config.yml, rubric.yml, and guidance.md files\n" +
			"into the configuration directory. Existing files are left alone\n" +
			"unless --force is given.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := wire(configDir)
			if err != nil {
				return err
			}

			result, err := runner.Scaffold(cmd.Context(), force)
			if err != nil {
				return err
			}

			if jsonOutput {
				writeJSON(cmd.OutOrStdout(), struct {
					Created []string `json:"created"`
					Skipped []string `json:"skipped"`
				}{
					Created: emptyIfNil(result.Created),
					Skipped: emptyIfNil(result.Skipped),
				})
				return nil
			}

			for _, name := range result.Created {
				fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", name)
			}
			for _, name := range result.Skipped {
				fmt.Fprintf(cmd.OutOrStdout(), "skipped %s (already exists)\n", name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configDir, "config-dir", ".github/feedback", "Feedback configuration directory")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")

	return cmd
}

// emptyIfNil keeps JSON list fields as [] instead of null.
func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
