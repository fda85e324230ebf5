package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/eykd/rubriclint-go/internal/feedback"
	"github.com/eykd/rubriclint-go/internal/fs"
	"github.com/eykd/rubriclint-go/internal/lock"
)

// BuildCommandTree constructs the root command with all subcommands
// wired to their OS-backed services.
func BuildCommandTree() *cobra.Command {
	root := NewRootCmd()
	root.AddCommand(NewValidateCmd(wireValidate))
	root.AddCommand(NewInitCmd(wireInit))
	root.AddCommand(NewConvertCmd(wireConvert))
	return root
}

// newService builds the feedback service for a configuration directory.
func newService(configDir string) *feedback.Service {
	reader := &fs.OSContentReader{Dir: configDir}
	writer := &fs.OSWriter{Dir: configDir}
	locker := lock.NewFromPath(fs.LockPath(configDir))
	return feedback.NewService(reader, writer, locker)
}

// wireValidate builds the validation service for the validate command.
// Validation is read-only, so a missing directory is not an error here:
// the run reports each artifact as not found instead.
func wireValidate(configDir string) (ValidateRunner, error) {
	return newService(configDir), nil
}

// wireInit builds the scaffolding service for the init command. The
// configuration directory is created up front so the advisory lock file
// has somewhere to live.
func wireInit(configDir string) (ScaffoldRunner, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating directory %s: %w", configDir, err)
	}
	return newService(configDir), nil
}

// wireConvert builds the rubric converter for the convert command. The
// advisory lock lives next to the output file, since that is what the
// conversion writes.
func wireConvert(outPath string) (ConvertRunner, error) {
	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating directory %s: %w", dir, err)
	}
	locker := lock.NewFromPath(fs.LockPath(dir))
	return feedback.NewConverter(locker), nil
}
