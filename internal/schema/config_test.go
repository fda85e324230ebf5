package schema_test

import (
	"strings"
	"testing"

	"github.com/eykd/rubriclint-go/internal/artifact"
	"github.com/eykd/rubriclint-go/internal/schema"
	"github.com/eykd/rubriclint-go/internal/yamltree"
)

// mustParse parses YAML content for a schema test, failing the test on
// syntax errors since those are the pipeline's job, not the schema's.
func mustParse(t *testing.T, content string) yamltree.Tree {
	t.Helper()
	tree, err := yamltree.Parse(content)
	if err != nil {
		t.Fatalf("parsing test document: %v", err)
	}
	return tree
}

// countSeverity counts error and warning findings.
func countSeverity(findings []artifact.Finding) (errs, warns int) {
	for _, f := range findings {
		if f.Severity == artifact.SeverityError {
			errs++
		} else {
			warns++
		}
	}
	return
}

// findMessage returns the first finding whose message contains substr.
func findMessage(findings []artifact.Finding, substr string) (artifact.Finding, bool) {
	for _, f := range findings {
		if strings.Contains(f.Message, substr) {
			return f, true
		}
	}
	return artifact.Finding{}, false
}

const validConfig = `report_file: report.qmd
model:
  primary: gpt-4o
max_input_tokens: 8000
max_output_tokens: 2000
`

func TestValidateSystemConfig_ValidDocument(t *testing.T) {
	findings := schema.ValidateSystemConfig(mustParse(t, validConfig))

	if len(findings) != 0 {
		t.Errorf("expected no findings, got %v", findings)
	}
}

func TestValidateSystemConfig_EmptyDocument(t *testing.T) {
	findings := schema.ValidateSystemConfig(mustParse(t, "# only comments\n"))

	if len(findings) != 1 {
		t.Fatalf("expected exactly one finding, got %v", findings)
	}
	if findings[0].Severity != artifact.SeverityError {
		t.Errorf("severity = %s, want error", findings[0].Severity)
	}
	if findings[0].Message != "file is empty or contains only comments" {
		t.Errorf("message = %q", findings[0].Message)
	}
}

func TestValidateSystemConfig_ReportFile(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantMessage string
		wantErr     bool
	}{
		{
			name:        "missing both spellings",
			content:     "model:\n  primary: gpt-4o\nmax_input_tokens: 1\nmax_output_tokens: 1\n",
			wantMessage: "'report_file' or 'report.filename' is required but missing",
			wantErr:     true,
		},
		{
			name:    "nested spelling accepted",
			content: "report:\n  filename: report.qmd\nmodel:\n  primary: gpt-4o\nmax_input_tokens: 1\nmax_output_tokens: 1\n",
		},
		{
			name:        "non-string value",
			content:     "report_file: 42\nmodel:\n  primary: gpt-4o\nmax_input_tokens: 1\nmax_output_tokens: 1\n",
			wantMessage: "'report_file' must be a string, got: 42",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := schema.ValidateSystemConfig(mustParse(t, tt.content))
			errs, _ := countSeverity(findings)

			if !tt.wantErr {
				if errs != 0 {
					t.Errorf("expected no errors, got %v", findings)
				}
				return
			}
			f, ok := findMessage(findings, tt.wantMessage)
			if !ok {
				t.Fatalf("no finding containing %q in %v", tt.wantMessage, findings)
			}
			if f.Severity != artifact.SeverityError {
				t.Errorf("severity = %s, want error", f.Severity)
			}
		})
	}
}

func TestValidateSystemConfig_ModelSection(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		wantMessage  string
		wantSeverity artifact.Severity
	}{
		{
			name:         "missing model section",
			content:      "report_file: r.qmd\nmax_input_tokens: 1\nmax_output_tokens: 1\n",
			wantMessage:  "'model' section is required and must be a mapping",
			wantSeverity: artifact.SeverityError,
		},
		{
			name:         "model is not a mapping",
			content:      "report_file: r.qmd\nmodel: gpt-4o\nmax_input_tokens: 1\nmax_output_tokens: 1\n",
			wantMessage:  "'model' section is required and must be a mapping",
			wantSeverity: artifact.SeverityError,
		},
		{
			name:         "missing primary",
			content:      "report_file: r.qmd\nmodel:\n  fallback: gpt-4o\nmax_input_tokens: 1\nmax_output_tokens: 1\n",
			wantMessage:  "'model.primary' is required but missing",
			wantSeverity: artifact.SeverityError,
		},
		{
			name:         "primary not a string",
			content:      "report_file: r.qmd\nmodel:\n  primary: 5\nmax_input_tokens: 1\nmax_output_tokens: 1\n",
			wantMessage:  "'model.primary' must be a string, got: 5",
			wantSeverity: artifact.SeverityError,
		},
		{
			name:         "unknown primary only warns",
			content:      "report_file: r.qmd\nmodel:\n  primary: some-new-model\nmax_input_tokens: 1\nmax_output_tokens: 1\n",
			wantMessage:  "'model.primary' uses unknown model 'some-new-model'",
			wantSeverity: artifact.SeverityWarning,
		},
		{
			name:         "unknown fallback only warns",
			content:      "report_file: r.qmd\nmodel:\n  primary: gpt-4o\n  fallback: mystery\nmax_input_tokens: 1\nmax_output_tokens: 1\n",
			wantMessage:  "'model.fallback' uses unknown model 'mystery'",
			wantSeverity: artifact.SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := schema.ValidateSystemConfig(mustParse(t, tt.content))

			f, ok := findMessage(findings, tt.wantMessage)
			if !ok {
				t.Fatalf("no finding containing %q in %v", tt.wantMessage, findings)
			}
			if f.Severity != tt.wantSeverity {
				t.Errorf("severity = %s, want %s", f.Severity, tt.wantSeverity)
			}
		})
	}
}

func TestValidateSystemConfig_TokenLimits(t *testing.T) {
	t.Run("absent limits warn", func(t *testing.T) {
		findings := schema.ValidateSystemConfig(mustParse(t,
			"report_file: r.qmd\nmodel:\n  primary: gpt-4o\n"))

		errs, warns := countSeverity(findings)
		if errs != 0 {
			t.Errorf("expected no errors, got %v", findings)
		}
		if warns != 2 {
			t.Errorf("expected 2 warnings, got %d: %v", warns, findings)
		}
		if _, ok := findMessage(findings, "'max_input_tokens' is not set"); !ok {
			t.Errorf("missing max_input_tokens warning in %v", findings)
		}
	})

	t.Run("non-positive limit errors", func(t *testing.T) {
		findings := schema.ValidateSystemConfig(mustParse(t,
			"report_file: r.qmd\nmodel:\n  primary: gpt-4o\nmax_input_tokens: 0\nmax_output_tokens: 2000\n"))

		f, ok := findMessage(findings, "'max_input_tokens' must be a positive integer, got: 0")
		if !ok {
			t.Fatalf("missing error in %v", findings)
		}
		if f.Severity != artifact.SeverityError {
			t.Errorf("severity = %s, want error", f.Severity)
		}
	})

	t.Run("non-integer limit errors", func(t *testing.T) {
		findings := schema.ValidateSystemConfig(mustParse(t,
			"report_file: r.qmd\nmodel:\n  primary: gpt-4o\nmax_input_tokens: many\nmax_output_tokens: 2000\n"))

		if _, ok := findMessage(findings, "'max_input_tokens' must be a positive integer, got: many"); !ok {
			t.Errorf("missing error in %v", findings)
		}
	})
}

func TestValidateSystemConfig_OptionalEnums(t *testing.T) {
	t.Run("known format passes", func(t *testing.T) {
		findings := schema.ValidateSystemConfig(mustParse(t, validConfig+"report_format: quarto\n"))
		if len(findings) != 0 {
			t.Errorf("expected no findings, got %v", findings)
		}
	})

	t.Run("unknown format warns", func(t *testing.T) {
		findings := schema.ValidateSystemConfig(mustParse(t, validConfig+"report_format: docx\n"))
		f, ok := findMessage(findings, "'report_format' uses unknown format 'docx'")
		if !ok {
			t.Fatalf("missing warning in %v", findings)
		}
		if f.Severity != artifact.SeverityWarning {
			t.Errorf("severity = %s, want warning", f.Severity)
		}
	})

	t.Run("unknown truncation strategy warns", func(t *testing.T) {
		findings := schema.ValidateSystemConfig(mustParse(t, validConfig+"truncation_strategy: middle\n"))
		if _, ok := findMessage(findings, "'truncation_strategy' uses unknown strategy 'middle'"); !ok {
			t.Errorf("missing warning in %v", findings)
		}
	})
}

func TestValidateSystemConfig_TimeoutsAndFlags(t *testing.T) {
	t.Run("valid timeouts and flags pass", func(t *testing.T) {
		findings := schema.ValidateSystemConfig(mustParse(t,
			validConfig+"request_timeout: 30.5\nworkflow_timeout: 600\nenable_code_analysis: true\n"))
		if len(findings) != 0 {
			t.Errorf("expected no findings, got %v", findings)
		}
	})

	t.Run("negative timeout errors", func(t *testing.T) {
		findings := schema.ValidateSystemConfig(mustParse(t, validConfig+"request_timeout: -5\n"))
		if _, ok := findMessage(findings, "'request_timeout' must be a positive number, got: -5"); !ok {
			t.Errorf("missing error in %v", findings)
		}
	})

	t.Run("non-boolean feature flag errors", func(t *testing.T) {
		findings := schema.ValidateSystemConfig(mustParse(t, validConfig+"enable_figure_checking: yes please\n"))
		if _, ok := findMessage(findings, "'enable_figure_checking' must be a boolean (true/false), got: yes please"); !ok {
			t.Errorf("missing error in %v", findings)
		}
	})
}

func TestValidateSystemConfig_DebugMode(t *testing.T) {
	t.Run("valid debug block passes", func(t *testing.T) {
		findings := schema.ValidateSystemConfig(mustParse(t,
			validConfig+"debug_mode:\n  enabled: true\n  save_prompts: false\n"))
		if len(findings) != 0 {
			t.Errorf("expected no findings, got %v", findings)
		}
	})

	t.Run("debug_mode must be a mapping", func(t *testing.T) {
		findings := schema.ValidateSystemConfig(mustParse(t, validConfig+"debug_mode: true\n"))
		if _, ok := findMessage(findings, "'debug_mode' must be a mapping"); !ok {
			t.Errorf("missing error in %v", findings)
		}
	})

	t.Run("non-boolean debug flag errors", func(t *testing.T) {
		findings := schema.ValidateSystemConfig(mustParse(t,
			validConfig+"debug_mode:\n  save_prompts: always\n"))
		if _, ok := findMessage(findings, "'debug_mode.save_prompts' must be a boolean, got: always"); !ok {
			t.Errorf("missing error in %v", findings)
		}
	})

	t.Run("upload_artifacts warns when enabled", func(t *testing.T) {
		findings := schema.ValidateSystemConfig(mustParse(t,
			validConfig+"debug_mode:\n  upload_artifacts: true\n"))
		f, ok := findMessage(findings, "'debug_mode.upload_artifacts' is enabled")
		if !ok {
			t.Fatalf("missing warning in %v", findings)
		}
		if f.Severity != artifact.SeverityWarning {
			t.Errorf("severity = %s, want warning", f.Severity)
		}
	})

	t.Run("upload_artifacts disabled is silent", func(t *testing.T) {
		findings := schema.ValidateSystemConfig(mustParse(t,
			validConfig+"debug_mode:\n  upload_artifacts: false\n"))
		if len(findings) != 0 {
			t.Errorf("expected no findings, got %v", findings)
		}
	})
}
