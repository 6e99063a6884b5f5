package domain

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mouse-blink/resub/internal/adapter"
	"github.com/mouse-blink/resub/internal/config"
	m "github.com/mouse-blink/resub/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingUI captures every UI call so workflow behavior can be asserted
// without a terminal.
type recordingUI struct {
	advisories  []string
	startTotal  int
	started     bool
	percents    []int
	closed      bool
	interrupted bool
	summary     *m.RunStats
	matches     []m.FileMatch
}

func (r *recordingUI) Advisory(msg string) {
	r.advisories = append(r.advisories, msg)
}

func (r *recordingUI) Start(totalFiles int) error {
	r.started = true
	r.startTotal = totalFiles

	return nil
}

func (r *recordingUI) Progress(percent int) {
	r.percents = append(r.percents, percent)
}

func (r *recordingUI) Close() {
	r.closed = true
}

func (r *recordingUI) Interrupted() {
	r.interrupted = true
}

func (r *recordingUI) Summary(stats m.RunStats) {
	r.summary = &stats
}

func (r *recordingUI) DisplayMatches(matches []m.FileMatch) error {
	r.matches = matches

	return nil
}

func TestWorkflowRun(t *testing.T) {
	t.Run("full run rewrites files and reports the summary", func(t *testing.T) {
		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "a.php"), "test find test\nfind test\n")
		writeTestFile(t, filepath.Join(root, "b.txt"), "find test\n")

		ui := &recordingUI{}
		wf := NewWorkflow(adapter.NewLocalFSAdapter(), ui)

		stats, err := wf.Run(context.Background(), m.RunConfig{
			Root:         m.Path(root),
			Find:         "find ",
			Replace:      "found ",
			Mode:         m.ModeLiteral,
			FilePatterns: []string{"*.php"},
		})
		require.NoError(t, err)

		assert.Equal(t, 2, stats.ChangedLines)
		assert.Equal(t, 1, stats.TotalFiles)

		assert.True(t, ui.started)
		assert.Equal(t, 1, ui.startTotal)
		assert.True(t, ui.closed)
		require.NotNil(t, ui.summary)
		assert.Equal(t, stats, *ui.summary)
		assert.Empty(t, ui.advisories, "advisory only fires without file patterns")
		assert.Equal(t, []int{100}, ui.percents)

		assert.Equal(t, "test found test\nfound test\n", readFile(t, filepath.Join(root, "a.php")))
		assert.Equal(t, "find test\n", readFile(t, filepath.Join(root, "b.txt")), "filtered-out file stays untouched")
	})

	t.Run("missing file patterns trigger the advisory", func(t *testing.T) {
		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "a.txt"), "x\n")

		ui := &recordingUI{}
		wf := NewWorkflow(adapter.NewLocalFSAdapter(), ui)

		_, err := wf.Run(context.Background(), m.RunConfig{
			Root:    m.Path(root),
			Find:    "x",
			Replace: "y",
			Mode:    m.ModeLiteral,
		})
		require.NoError(t, err)

		require.Len(t, ui.advisories, 1)
		assert.Equal(t, "** Consider using file patterns to speed up the process **", ui.advisories[0])
	})

	t.Run("tree config supplies default patterns and excludes", func(t *testing.T) {
		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, config.FileName), "file_patterns:\n  - '*.php'\nexclude:\n  - skipme\n")
		writeTestFile(t, filepath.Join(root, "a.php"), "find\n")
		writeTestFile(t, filepath.Join(root, "skipme.php"), "find\n")
		writeTestFile(t, filepath.Join(root, "b.txt"), "find\n")

		ui := &recordingUI{}
		wf := NewWorkflow(adapter.NewLocalFSAdapter(), ui)

		stats, err := wf.Run(context.Background(), m.RunConfig{
			Root:    m.Path(root),
			Find:    "find",
			Replace: "found",
			Mode:    m.ModeLiteral,
		})
		require.NoError(t, err)

		assert.Equal(t, 1, stats.TotalFiles)
		assert.Equal(t, 1, stats.ChangedLines)
		assert.Empty(t, ui.advisories, "config-supplied patterns suppress the advisory")

		assert.Equal(t, "found\n", readFile(t, filepath.Join(root, "a.php")))
		assert.Equal(t, "find\n", readFile(t, filepath.Join(root, "skipme.php")))
		assert.Equal(t, "find\n", readFile(t, filepath.Join(root, "b.txt")))
	})

	t.Run("cancelled run is acknowledged and not an error", func(t *testing.T) {
		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "a.txt"), "find\n")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		ui := &recordingUI{}
		wf := NewWorkflow(adapter.NewLocalFSAdapter(), ui)

		_, err := wf.Run(ctx, m.RunConfig{
			Root:         m.Path(root),
			Find:         "find",
			Replace:      "found",
			Mode:         m.ModeLiteral,
			FilePatterns: []string{"*.txt"},
		})
		require.NoError(t, err)

		assert.True(t, ui.interrupted)
		assert.True(t, ui.closed)
		require.NotNil(t, ui.summary, "summary is printed even after an interrupt")
		assert.Equal(t, "find\n", readFile(t, filepath.Join(root, "a.txt")))
	})

	t.Run("invalid regex surfaces before any filesystem work", func(t *testing.T) {
		ui := &recordingUI{}
		wf := NewWorkflow(adapter.NewLocalFSAdapter(), ui)

		_, err := wf.Run(context.Background(), m.RunConfig{
			Root: m.Path(t.TempDir()),
			Find: "(unclosed",
			Mode: m.ModeRegex,
		})
		require.Error(t, err)
		assert.False(t, ui.started)
	})

	t.Run("dry run reports counts without modifying files", func(t *testing.T) {
		root := t.TempDir()
		path := filepath.Join(root, "a.txt")
		writeTestFile(t, path, "find one\nfind two\n")

		ui := &recordingUI{}
		wf := NewWorkflow(adapter.NewLocalFSAdapter(), ui)

		stats, err := wf.Run(context.Background(), m.RunConfig{
			Root:         m.Path(root),
			Find:         "find",
			Replace:      "found",
			Mode:         m.ModeLiteral,
			FilePatterns: []string{"*.txt"},
			DryRun:       true,
		})
		require.NoError(t, err)

		assert.Equal(t, 2, stats.ChangedLines)
		assert.Equal(t, "find one\nfind two\n", readFile(t, path))
	})
}

func TestWorkflowList(t *testing.T) {
	t.Run("counts matches per file without writing", func(t *testing.T) {
		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "a.php"), "find one find two\nfind three\n")
		writeTestFile(t, filepath.Join(root, "b.php"), "nothing\n")

		ui := &recordingUI{}
		wf := NewWorkflow(adapter.NewLocalFSAdapter(), ui)

		matches, err := wf.List(context.Background(), m.RunConfig{
			Root:         m.Path(root),
			Find:         "find",
			Mode:         m.ModeLiteral,
			FilePatterns: []string{"*.php"},
		})
		require.NoError(t, err)
		require.Len(t, matches, 2)

		byPath := map[string]int{}
		for _, match := range matches {
			byPath[filepath.Base(string(match.Path))] = match.Matches
		}

		assert.Equal(t, 3, byPath["a.php"])
		assert.Equal(t, 0, byPath["b.php"])
		assert.Equal(t, matches, ui.matches)

		assert.Equal(t, "find one find two\nfind three\n", readFile(t, filepath.Join(root, "a.php")))
	})

	t.Run("unreadable files are left out of the listing", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("permission checks do not apply to root")
		}

		root := t.TempDir()
		sealed := filepath.Join(root, "sealed.php")
		writeTestFile(t, sealed, "find\n")
		writeTestFile(t, filepath.Join(root, "open.php"), "find\n")

		require.NoError(t, os.Chmod(sealed, 0o000))
		t.Cleanup(func() { _ = os.Chmod(sealed, 0o644) })

		ui := &recordingUI{}
		wf := NewWorkflow(adapter.NewLocalFSAdapter(), ui)

		matches, err := wf.List(context.Background(), m.RunConfig{
			Root:         m.Path(root),
			Find:         "find",
			Mode:         m.ModeLiteral,
			FilePatterns: []string{"*.php"},
		})
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, filepath.Join(root, "open.php"), string(matches[0].Path))
	})
}
