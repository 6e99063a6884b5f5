package controller

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	m "github.com/mouse-blink/resub/internal/model"
)

// SimpleUI reports a run as plain text. Progress is a single line updated
// in place with a carriage return; quiet mode suppresses it entirely while
// the counters stay untouched.
type SimpleUI struct {
	out           io.Writer
	quiet         bool
	progressShown bool
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(out io.Writer, quiet bool) *SimpleUI {
	return &SimpleUI{out: out, quiet: quiet}
}

// Advisory prints a one-line hint.
func (s *SimpleUI) Advisory(msg string) {
	_, _ = color.New(color.FgYellow).Fprintln(s.out, msg)
}

// Start is a no-op for plain output.
func (s *SimpleUI) Start(_ int) error {
	return nil
}

// Progress rewrites the progress line in place.
func (s *SimpleUI) Progress(percent int) {
	if s.quiet {
		return
	}

	_, _ = fmt.Fprintf(s.out, "\rProgress: %d%%", percent)

	s.progressShown = true
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {
}

// Interrupted acknowledges an operator-initiated stop.
func (s *SimpleUI) Interrupted() {
	s.endProgressLine()

	_, _ = color.New(color.FgYellow).Fprintln(s.out, "Interrupted, stopping.")
}

// Summary prints the three-line aggregate report. When a progress line is
// on screen it is terminated first, leaving one blank line before the
// summary.
func (s *SimpleUI) Summary(stats m.RunStats) {
	if s.progressShown {
		_, _ = fmt.Fprint(s.out, "\n\n")

		s.progressShown = false
	}

	_, _ = fmt.Fprintf(s.out, "Occurrences replaced: %d\n", stats.ChangedLines)
	_, _ = fmt.Fprintf(s.out, "Files skipped (Permission denied): %d\n", stats.SkippedFiles)
	_, _ = fmt.Fprintf(s.out, "Total files searched: %d\n", stats.TotalFiles)
}

// DisplayMatches renders the file/match-count table.
func (s *SimpleUI) DisplayMatches(matches []m.FileMatch) error {
	if len(matches) == 0 {
		_, _ = fmt.Fprintln(s.out, "No matching files found")
		return nil
	}

	_, _ = fmt.Fprintf(s.out, "\n%s", renderMatchTable(matches))

	return nil
}

func (s *SimpleUI) endProgressLine() {
	if s.progressShown {
		_, _ = fmt.Fprintln(s.out)

		s.progressShown = false
	}
}
