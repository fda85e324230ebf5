// Package artifact defines the validated artifact kinds and the findings
// emitted against them.
package artifact

// Kind identifies one of the three validated configuration artifacts.
type Kind string

const (
	// KindSystemConfig is the system configuration document (config.yml).
	KindSystemConfig Kind = "system_config"
	// KindRubric is the grading rubric document (rubric.yml).
	KindRubric Kind = "rubric"
	// KindGuidance is the free-text guidance document (guidance.md).
	KindGuidance Kind = "guidance"
)

// Filename returns the canonical filename for the artifact kind within a
// feedback configuration directory.
func (k Kind) Filename() string {
	switch k {
	case KindSystemConfig:
		return "config.yml"
	case KindRubric:
		return "rubric.yml"
	case KindGuidance:
		return "guidance.md"
	default:
		return string(k)
	}
}

// Severity indicates how severe a finding is.
type Severity string

const (
	// SeverityError indicates a finding that must be resolved.
	SeverityError Severity = "error"
	// SeverityWarning indicates a finding that should be reviewed.
	SeverityWarning Severity = "warning"
)

// Class identifies which validation stage produced a finding.
type Class string

const (
	// ClassSyntax marks documents that could not be parsed at all,
	// including unreadable or missing files.
	ClassSyntax Class = "syntax"
	// ClassSchema marks required fields that are absent or mistyped,
	// and recommended fields that are absent.
	ClassSchema Class = "schema"
	// ClassSemantic marks cross-field invariant violations.
	ClassSemantic Class = "semantic"
)

// Finding represents a single validation issue in one artifact.
// Line is 1-based and 0 when no location is known; only syntax findings
// carry one.
type Finding struct {
	Class    Class
	Severity Severity
	Message  string
	Line     int
}

// Error constructs an error-severity finding.
func Error(class Class, message string) Finding {
	return Finding{Class: class, Severity: SeverityError, Message: message}
}

// Warning constructs a warning-severity finding.
func Warning(class Class, message string) Finding {
	return Finding{Class: class, Severity: SeverityWarning, Message: message}
}
