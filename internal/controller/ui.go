// Package controller provides output adapters for reporting run progress
// and results.
package controller

import (
	m "github.com/mouse-blink/resub/internal/model"
)

// UI defines the interface for reporting a run to the user. Implementations
// can use different output methods (simple text, TUI, etc).
type UI interface {
	// Advisory prints a one-line hint before the run starts.
	Advisory(msg string)

	// Start is called once the FileSet is known, before rewriting begins.
	Start(totalFiles int) error

	// Progress reports a completion percentage. Callers guarantee values
	// are strictly increasing within a run.
	Progress(percent int)

	// Close tears down any live rendering. Called before the final lines
	// are printed.
	Close()

	// Interrupted acknowledges an operator-initiated stop.
	Interrupted()

	// Summary prints the three-line aggregate report.
	Summary(stats m.RunStats)

	// DisplayMatches renders the read-only file/match-count listing.
	DisplayMatches(matches []m.FileMatch) error
}
