package domain

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mouse-blink/resub/internal/adapter"
	"github.com/mouse-blink/resub/internal/config"
	"github.com/mouse-blink/resub/internal/controller"
	"github.com/mouse-blink/resub/internal/filelock"
	m "github.com/mouse-blink/resub/internal/model"
)

// Workflow ties selection, locking, rewriting and reporting together.
type Workflow interface {
	// Run performs a full find/replace pass and reports the summary through
	// the UI. A cancelled context stops the run between files and is not
	// treated as a failure.
	Run(ctx context.Context, cfg m.RunConfig) (m.RunStats, error)

	// List enumerates the files a run with this configuration would touch,
	// with per-file match counts. It never writes.
	List(ctx context.Context, cfg m.RunConfig) ([]m.FileMatch, error)
}

type workflow struct {
	fs       adapter.FSAdapter
	selector Selector
	engine   Engine
	ui       controller.UI
}

// NewWorkflow creates a Workflow instance with the provided adapters.
func NewWorkflow(fs adapter.FSAdapter, ui controller.UI) Workflow {
	return &workflow{
		fs:       fs,
		selector: NewSelector(fs),
		engine:   NewEngine(fs),
		ui:       ui,
	}
}

func (w *workflow) Run(ctx context.Context, cfg m.RunConfig) (m.RunStats, error) {
	var stats m.RunStats

	cfg, err := w.applyTreeDefaults(cfg)
	if err != nil {
		return stats, err
	}

	rw, err := NewRewriter(cfg.Find, cfg.Replace, cfg.Mode)
	if err != nil {
		return stats, err
	}

	if len(cfg.FilePatterns) == 0 {
		w.ui.Advisory("** Consider using file patterns to speed up the process **")
	}

	files, err := w.selector.Select(cfg.Root, cfg.FilePatterns, cfg.Exclude)
	if err != nil {
		return stats, err
	}

	if !cfg.DryRun {
		lock := filelock.ForRoot(string(cfg.Root))

		acquired, lockErr := lock.TryLock()
		if lockErr != nil {
			return stats, lockErr
		}

		if !acquired {
			return stats, fmt.Errorf("another resub run is already rewriting %s", cfg.Root)
		}

		defer func() {
			_ = lock.Unlock()
		}()
	}

	if err := w.ui.Start(len(files)); err != nil {
		return stats, err
	}

	stats, runErr := w.engine.Rewrite(ctx, RewriteArgs{
		Files:    files,
		Rewriter: rw,
		DryRun:   cfg.DryRun,
		Progress: w.ui.Progress,
	})

	interrupted := errors.Is(runErr, context.Canceled)

	w.ui.Close()

	if interrupted {
		w.ui.Interrupted()

		runErr = nil
	}

	w.ui.Summary(stats)

	return stats, runErr
}

func (w *workflow) List(ctx context.Context, cfg m.RunConfig) ([]m.FileMatch, error) {
	cfg, err := w.applyTreeDefaults(cfg)
	if err != nil {
		return nil, err
	}

	rw, err := NewRewriter(cfg.Find, cfg.Replace, cfg.Mode)
	if err != nil {
		return nil, err
	}

	files, err := w.selector.Select(cfg.Root, cfg.FilePatterns, cfg.Exclude)
	if err != nil {
		return nil, err
	}

	matches := make([]m.FileMatch, 0, len(files))

	for _, path := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		count, countErr := w.countMatches(path, rw)
		if countErr != nil {
			// Unreadable files are left out, mirroring a rewrite skip.
			continue
		}

		matches = append(matches, m.FileMatch{Path: path, Matches: count})
	}

	if err := w.ui.DisplayMatches(matches); err != nil {
		return nil, err
	}

	return matches, nil
}

// applyTreeDefaults merges the optional per-tree config file into the run
// configuration. Values given on the command line win.
func (w *workflow) applyTreeDefaults(cfg m.RunConfig) (m.RunConfig, error) {
	root, err := w.fs.Abs(cfg.Root)
	if err != nil {
		return cfg, err
	}

	cfg.Root = root

	treeCfg, err := config.Load(string(root))
	if err != nil {
		return cfg, err
	}

	if len(cfg.FilePatterns) == 0 {
		cfg.FilePatterns = treeCfg.FilePatterns
	}

	cfg.Exclude = append(append([]string{}, treeCfg.Exclude...), cfg.Exclude...)

	return cfg, nil
}

// countMatches counts pattern occurrences in a file without modifying it.
func (w *workflow) countMatches(path m.Path, rw Rewriter) (int, error) {
	f, err := w.fs.Open(path)
	if err != nil {
		return 0, err
	}

	defer func() {
		_ = f.Close()
	}()

	total := 0
	reader := bufio.NewReader(f)

	for {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return 0, readErr
		}

		if line != "" {
			body, _ := splitTerminator(line)
			total += rw.Matches(body)
		}

		if readErr == io.EOF {
			return total, nil
		}
	}
}
