// Package cmd contains the CLI commands for the rlint application.
package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd *cobra.Command

// verbose holds the global --verbose flag state.
var verbose bool

func init() {
	rootCmd = BuildCommandTree()
}

// GetVerbose returns the current verbose flag state.
func GetVerbose() bool {
	return verbose
}

// NewRootCmd creates a new root command instance without subcommands.
// This is useful for testing to get a fresh command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rlint",
		Short: "Validate AI feedback configuration artifacts",
		Long: "rlint checks the config.yml, rubric.yml, and guidance.md documents that\n" +
			"drive automated assignment feedback, reporting syntax, schema, and\n" +
			"cross-field problems before they reach the feedback workflow.",
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging to stderr")

	return cmd
}

// ExecuteContext runs the root command with the given context.
// This enables graceful shutdown via context cancellation (e.g., on SIGINT).
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
