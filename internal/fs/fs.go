// Package fs provides filesystem adapters that implement feedback
// service interfaces.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/eykd/rubriclint-go/internal/feedback"
)

// OSContentReader implements feedback.ContentReader against a feedback
// configuration directory.
type OSContentReader struct {
	Dir string
}

// ReadFile reads the full content of an artifact file in the
// configuration directory. A missing file is reported as ErrNotFound so
// callers can distinguish absence from read failure.
func (r *OSContentReader) ReadFile(_ context.Context, filename string) (string, error) {
	data, err := os.ReadFile(filepath.Join(r.Dir, filename))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", feedback.ErrNotFound, filename)
		}
		return "", err
	}
	return string(data), nil
}

// OSWriter implements feedback.FileWriter against a feedback
// configuration directory.
type OSWriter struct {
	Dir string
}

// WriteFile writes content to a file in the configuration directory,
// creating the directory first when needed.
func (w *OSWriter) WriteFile(_ context.Context, filename, content string) error {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", w.Dir, err)
	}
	return os.WriteFile(filepath.Join(w.Dir, filename), []byte(content), 0o644)
}

// FileExists reports whether a file already exists in the configuration
// directory.
func (w *OSWriter) FileExists(_ context.Context, filename string) (bool, error) {
	_, err := os.Stat(filepath.Join(w.Dir, filename))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// DirExists reports whether the given directory exists.
func DirExists(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}

// LockPath returns the advisory lock file path for a configuration
// directory.
func LockPath(dir string) string {
	return filepath.Join(dir, ".rlint.lock")
}
