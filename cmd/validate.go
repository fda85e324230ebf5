package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/eykd/rubriclint-go/internal/artifact"
)

// ValidateRunner abstracts the validation service for the validate command.
type ValidateRunner interface {
	Validate(ctx context.Context) (*artifact.Report, error)
}

// ValidationFailedError signals that validation findings require a
// non-zero exit. The code follows the pipeline precedence: syntax
// failures exit 1, schema or semantic errors exit 2, and warnings under
// strict mode exit 3.
type ValidationFailedError struct {
	Code     int
	Errors   int
	Warnings int
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s), %d warning(s)", e.Errors, e.Warnings)
}

// ExitCode implements ExitCoder.
func (e *ValidationFailedError) ExitCode() int {
	return e.Code
}

// jsonFinding is the JSON shape of a single finding.
type jsonFinding struct {
	Class    string `json:"class"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line,omitempty"`
}

// jsonFileReport is the JSON shape of one artifact's results.
type jsonFileReport struct {
	File     string        `json:"file"`
	Status   string        `json:"status"`
	Findings []jsonFinding `json:"findings"`
}

// jsonReport is the JSON shape of a full validation run.
type jsonReport struct {
	Files   []jsonFileReport `json:"files"`
	Summary jsonSummary      `json:"summary"`
}

type jsonSummary struct {
	Errors   int  `json:"errors"`
	Warnings int  `json:"warnings"`
	Valid    bool `json:"valid"`
}

// NewValidateCmd creates the validate command. The wire function builds
// a ValidateRunner for the chosen configuration directory.
func NewValidateCmd(wire func(configDir string) (ValidateRunner, error)) *cobra.Command {
	var (
		configDir  string
		strict     bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the feedback configuration artifacts",
		Long: "Validate checks config.yml, rubric.yml, and guidance.md in the\n" +
			"configuration directory and reports every syntax, schema, and\n" +
			"semantic problem found. The run never modifies any file.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := wire(configDir)
			if err != nil {
				return err
			}

			report, err := runner.Validate(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput {
				writeJSON(cmd.OutOrStdout(), buildJSONReport(report))
			} else {
				renderReport(cmd.OutOrStdout(), report)
			}

			if code := report.ExitCode(strict); code != 0 {
				return &ValidationFailedError{
					Code:     code,
					Errors:   report.TotalErrors(),
					Warnings: report.TotalWarnings(),
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configDir, "config-dir", ".github/feedback", "Feedback configuration directory")
	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as failures (exit 3)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")

	return cmd
}

// renderReport writes the human-readable validation report.
func renderReport(w io.Writer, report *artifact.Report) {
	for i := range report.Files {
		fr := &report.Files[i]
		fmt.Fprintf(w, "%s: %s\n", fr.File, fr.Status())
		for _, finding := range fr.Findings {
			if finding.Line > 0 {
				fmt.Fprintf(w, "  [%s] line %d: %s\n", finding.Severity, finding.Line, finding.Message)
			} else {
				fmt.Fprintf(w, "  [%s] %s\n", finding.Severity, finding.Message)
			}
		}
	}
	fmt.Fprintf(w, "\n%d error(s), %d warning(s)\n", report.TotalErrors(), report.TotalWarnings())
}

// buildJSONReport maps the domain report onto its JSON shape.
func buildJSONReport(report *artifact.Report) jsonReport {
	out := jsonReport{
		Files: make([]jsonFileReport, 0, len(report.Files)),
		Summary: jsonSummary{
			Errors:   report.TotalErrors(),
			Warnings: report.TotalWarnings(),
			Valid:    report.TotalErrors() == 0,
		},
	}
	for i := range report.Files {
		fr := &report.Files[i]
		jf := jsonFileReport{
			File:     fr.File,
			Status:   string(fr.Status()),
			Findings: make([]jsonFinding, 0, len(fr.Findings)),
		}
		for _, finding := range fr.Findings {
			jf.Findings = append(jf.Findings, jsonFinding{
				Class:    string(finding.Class),
				Severity: string(finding.Severity),
				Message:  finding.Message,
				Line:     finding.Line,
			})
		}
		out.Files = append(out.Files, jf)
	}
	return out
}
