// Command cells runs the reactive engine demos and the live counter server.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	cerrors "github.com/vango-dev/cells/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		cerrors.PrintError(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configDir string

	rootCmd := &cobra.Command{
		Use:   "cells",
		Short: "Fine-grained reactive DOM updates",
		Long: `cells keeps a DOM tree in sync with reactive signals.

Signals record which hooks read them. Writing a signal queues exactly
those hooks, and one propagation pass updates each of them once, in
creation order.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configDir, "config", "c", ".", "Directory containing cells.yaml or cells.json")

	rootCmd.AddCommand(
		demoCmd(&configDir),
		serveCmd(&configDir),
		versionCmd(),
	)
	return rootCmd
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
