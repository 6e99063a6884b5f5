package controller

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// NewUI creates a UI based on whether TTY mode is enabled. Quiet runs always
// get the plain UI with progress suppressed.
func NewUI(cmd *cobra.Command, useTTY bool, quiet bool, cancel context.CancelFunc) UI {
	out := cmd.OutOrStdout()

	if useTTY && !quiet {
		return NewTUI(out, cancel)
	}

	return NewSimpleUI(out, quiet)
}

// IsTTY checks if the given writer is an interactive terminal. Returns
// false when output is redirected to a file or pipe.
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
