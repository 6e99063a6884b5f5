package controller

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	m "github.com/mouse-blink/resub/internal/model"
	"golang.org/x/sync/errgroup"
)

// TUI implements UI using Bubble Tea for interactive display. The program
// runs in its own goroutine; the engine stays sequential and feeds it
// progress messages.
type TUI struct {
	out     io.Writer
	cancel  context.CancelFunc
	program *tea.Program
	group   *errgroup.Group
}

// NewTUI creates a new TUI. cancel is invoked when the user asks the run to
// stop from inside the program.
func NewTUI(out io.Writer, cancel context.CancelFunc) *TUI {
	return &TUI{out: out, cancel: cancel}
}

// Advisory prints a one-line hint before the program starts.
func (t *TUI) Advisory(msg string) {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	_, _ = fmt.Fprintln(t.out, style.Render(msg))
}

// Start launches the Bubble Tea program.
func (t *TUI) Start(totalFiles int) error {
	t.program = tea.NewProgram(
		newRunModel(totalFiles, t.cancel),
		tea.WithOutput(t.out),
	)

	t.group = &errgroup.Group{}
	t.group.Go(func() error {
		_, err := t.program.Run()

		return err
	})

	return nil
}

// Progress forwards a percentage to the running program.
func (t *TUI) Progress(percent int) {
	if t.program == nil {
		return
	}

	t.program.Send(progressMsg{percent: percent})
}

// Close shuts the program down and waits for its goroutine to exit.
func (t *TUI) Close() {
	if t.program == nil {
		return
	}

	t.program.Send(doneMsg{})

	_ = t.group.Wait()

	t.program = nil
}

// Interrupted acknowledges an operator-initiated stop.
func (t *TUI) Interrupted() {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	_, _ = fmt.Fprintln(t.out, style.Render("Interrupted, stopping."))
}

// Summary prints the three-line aggregate report after the program exits.
func (t *TUI) Summary(stats m.RunStats) {
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	_, _ = fmt.Fprintf(t.out, "Occurrences replaced: %s\n", accent.Render(fmt.Sprintf("%d", stats.ChangedLines)))
	_, _ = fmt.Fprintf(t.out, "Files skipped (Permission denied): %s\n", accent.Render(fmt.Sprintf("%d", stats.SkippedFiles)))
	_, _ = fmt.Fprintf(t.out, "Total files searched: %s\n", accent.Render(fmt.Sprintf("%d", stats.TotalFiles)))
}

// DisplayMatches renders the file/match-count table.
func (t *TUI) DisplayMatches(matches []m.FileMatch) error {
	if len(matches) == 0 {
		_, _ = fmt.Fprintln(t.out, "No matching files found")
		return nil
	}

	_, _ = fmt.Fprintf(t.out, "\n%s", renderMatchTable(matches))

	return nil
}
