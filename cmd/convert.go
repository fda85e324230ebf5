package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eykd/rubriclint-go/internal/feedback"
)

// ConvertRunner abstracts the rubric converter for the convert command.
type ConvertRunner interface {
	Convert(ctx context.Context, inPath, outPath string) (*feedback.ConvertResult, error)
}

// NewConvertCmd creates the convert command. The wire function builds a
// ConvertRunner for the chosen output path.
func NewConvertCmd(wire func(outPath string) (ConvertRunner, error)) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "convert <rubric.md> <rubric.yml>",
		Short: "Convert a Markdown rubric to rubric.yml",
		Long: "Convert parses a Markdown rubric document and writes the equivalent\n" +
			"rubric.yml, deriving criterion ids from the criterion names.",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			inPath, outPath := args[0], args[1]

			runner, err := wire(outPath)
			if err != nil {
				return err
			}

			result, err := runner.Convert(cmd.Context(), inPath, outPath)
			if err != nil {
				return err
			}

			if jsonOutput {
				writeJSON(cmd.OutOrStdout(), struct {
					Output   string `json:"output"`
					Criteria int    `json:"criteria"`
				}{Output: result.Output, Criteria: result.Criteria})
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d criteria)\n", result.Output, result.Criteria)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")

	return cmd
}
