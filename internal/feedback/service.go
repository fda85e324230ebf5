// Package feedback provides the application service that validates,
// scaffolds, and converts AI feedback configuration artifacts.
package feedback

import (
	"context"
	"errors"
	"fmt"

	"github.com/eykd/rubriclint-go/internal/artifact"
	"github.com/eykd/rubriclint-go/internal/schema"
	"github.com/eykd/rubriclint-go/internal/yamltree"
)

// ErrNotFound marks an artifact file that does not exist. ContentReader
// implementations wrap it so the pipeline can report absence as a
// finding instead of aborting the run.
var ErrNotFound = errors.New("file not found")

// ContentReader abstracts reading artifact files from the configuration
// directory.
type ContentReader interface {
	ReadFile(ctx context.Context, filename string) (string, error)
}

// FileWriter abstracts writing artifact files to the configuration
// directory.
type FileWriter interface {
	WriteFile(ctx context.Context, filename, content string) error
	FileExists(ctx context.Context, filename string) (bool, error)
}

// Locker abstracts advisory lock acquisition for mutating commands.
type Locker interface {
	TryLock(ctx context.Context) error
	Unlock() error
}

// Service coordinates validation and scaffolding over one feedback
// configuration directory.
type Service struct {
	reader ContentReader
	writer FileWriter
	locker Locker
}

// NewService creates a Service with the given dependencies.
func NewService(reader ContentReader, writer FileWriter, locker Locker) *Service {
	return &Service{reader: reader, writer: writer, locker: locker}
}

// validationOrder fixes the sequence artifacts are checked in. Each
// artifact is validated independently: a failure in one never skips the
// others.
var validationOrder = []artifact.Kind{
	artifact.KindSystemConfig,
	artifact.KindRubric,
	artifact.KindGuidance,
}

// Validate runs the full parse, schema, and semantic pipeline over the
// three artifacts and aggregates the per-artifact findings into one
// report. The run is read-only and deterministic: identical artifact
// content always yields an identical report.
func (s *Service) Validate(ctx context.Context) (*artifact.Report, error) {
	report := &artifact.Report{}
	for _, kind := range validationOrder {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report.Files = append(report.Files, s.validateArtifact(ctx, kind))
	}
	return report, nil
}

// validateArtifact runs one artifact's stages to completion. A syntax
// failure (unreadable file or unparseable document) yields exactly one
// syntax-class error and suppresses the schema and semantic stages,
// which need a parsed tree to operate on.
func (s *Service) validateArtifact(ctx context.Context, kind artifact.Kind) artifact.FileReport {
	fr := artifact.FileReport{Kind: kind, File: kind.Filename()}

	content, err := s.reader.ReadFile(ctx, fr.File)
	if err != nil {
		fr.Findings = append(fr.Findings, readFinding(err, fr.File))
		return fr
	}

	if kind == artifact.KindGuidance {
		fr.Findings = append(fr.Findings, schema.ValidateGuidance(content)...)
		return fr
	}

	tree, err := yamltree.Parse(content)
	if err != nil {
		var syntaxErr *yamltree.SyntaxError
		finding := artifact.Error(artifact.ClassSyntax, err.Error())
		if errors.As(err, &syntaxErr) {
			finding.Line = syntaxErr.Line
		}
		fr.Findings = append(fr.Findings, finding)
		return fr
	}

	switch kind {
	case artifact.KindSystemConfig:
		fr.Findings = append(fr.Findings, schema.ValidateSystemConfig(tree)...)
	case artifact.KindRubric:
		fr.Findings = append(fr.Findings, schema.ValidateRubric(tree)...)
	}
	return fr
}

// readFinding maps a read failure to a syntax-class error: no parse was
// possible, so later stages are meaningless for this artifact.
func readFinding(err error, filename string) artifact.Finding {
	if errors.Is(err, ErrNotFound) {
		return artifact.Error(artifact.ClassSyntax,
			fmt.Sprintf("file not found: %s is required", filename))
	}
	return artifact.Error(artifact.ClassSyntax,
		fmt.Sprintf("error reading file: %v", err))
}
