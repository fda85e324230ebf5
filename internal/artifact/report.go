package artifact

// Status summarizes the validation outcome for a single artifact.
type Status string

const (
	// StatusValid means zero errors and zero warnings.
	StatusValid Status = "VALID"
	// StatusWarning means zero errors and at least one warning.
	StatusWarning Status = "WARNING"
	// StatusError means at least one error.
	StatusError Status = "ERROR"
)

// FileReport holds the findings for one artifact, in insertion order.
type FileReport struct {
	Kind     Kind
	File     string
	Findings []Finding
}

// Counts returns the number of error and warning findings.
func (f *FileReport) Counts() (errs, warns int) {
	for _, finding := range f.Findings {
		if finding.Severity == SeverityError {
			errs++
		} else {
			warns++
		}
	}
	return
}

// Status derives the artifact's status tag from its findings. The status
// of one artifact is independent of the others.
func (f *FileReport) Status() Status {
	errs, warns := f.Counts()
	switch {
	case errs > 0:
		return StatusError
	case warns > 0:
		return StatusWarning
	default:
		return StatusValid
	}
}

// HasSyntaxFailure reports whether this artifact failed to parse.
func (f *FileReport) HasSyntaxFailure() bool {
	for _, finding := range f.Findings {
		if finding.Class == ClassSyntax && finding.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Report aggregates the per-artifact reports of one validation run.
type Report struct {
	Files []FileReport
}

// TotalErrors returns the error count across all artifacts.
func (r *Report) TotalErrors() int {
	total := 0
	for i := range r.Files {
		errs, _ := r.Files[i].Counts()
		total += errs
	}
	return total
}

// TotalWarnings returns the warning count across all artifacts.
func (r *Report) TotalWarnings() int {
	total := 0
	for i := range r.Files {
		_, warns := r.Files[i].Counts()
		total += warns
	}
	return total
}

// HasSyntaxFailure reports whether any artifact failed to parse.
func (r *Report) HasSyntaxFailure() bool {
	for i := range r.Files {
		if r.Files[i].HasSyntaxFailure() {
			return true
		}
	}
	return false
}

// ExitCode derives the process exit code for the run. Precedence when
// several conditions hold: syntax failure (1) beats schema/semantic
// errors (2) beats strict-mode warnings (3) beats success (0). A
// document that fails to parse cannot be meaningfully schema-validated,
// so the earlier pipeline stage wins.
func (r *Report) ExitCode(strict bool) int {
	switch {
	case r.HasSyntaxFailure():
		return 1
	case r.TotalErrors() > 0:
		return 2
	case strict && r.TotalWarnings() > 0:
		return 3
	default:
		return 0
	}
}
