package feedback

import (
	"context"
	"fmt"
	"os"

	"github.com/eykd/rubriclint-go/internal/rubricmd"
)

// ConvertResult holds the outcome of a markdown-to-YAML rubric
// conversion.
type ConvertResult struct {
	Output   string
	Criteria int
}

// Converter turns markdown rubrics into rubric.yml files. The read and
// write functions are injectable for tests and default to the OS.
type Converter struct {
	locker Locker
	read   func(path string) ([]byte, error)
	write  func(path string, data []byte) error
}

// NewConverter creates a Converter backed by the OS filesystem.
func NewConverter(locker Locker) *Converter {
	return &Converter{
		locker: locker,
		read:   os.ReadFile,
		write: func(path string, data []byte) error {
			return os.WriteFile(path, data, 0o644)
		},
	}
}

// SetFileFuncs replaces the read and write functions. Tests use this to
// run conversions against in-memory content.
func (c *Converter) SetFileFuncs(read func(path string) ([]byte, error), write func(path string, data []byte) error) {
	c.read = read
	c.write = write
}

// Convert parses the markdown rubric at inPath and writes its YAML form
// to outPath, acquiring the advisory lock first.
func (c *Converter) Convert(ctx context.Context, inPath, outPath string) (*ConvertResult, error) {
	if err := c.locker.TryLock(ctx); err != nil {
		return nil, err
	}
	defer c.locker.Unlock()

	data, err := c.read(inPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", inPath, err)
	}

	rubric, err := rubricmd.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", inPath, err)
	}

	rendered, err := rubricmd.Render(rubric)
	if err != nil {
		return nil, err
	}

	if err := c.write(outPath, []byte(rendered)); err != nil {
		return nil, fmt.Errorf("writing %s: %w", outPath, err)
	}

	return &ConvertResult{Output: outPath, Criteria: len(rubric.Criteria)}, nil
}
