package domain

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/mouse-blink/resub/internal/adapter"
	m "github.com/mouse-blink/resub/internal/model"
)

// ErrNotText marks file content that is not valid UTF-8. Such files are
// skipped, not rewritten.
var ErrNotText = errors.New("file content is not valid utf-8")

// ProgressSink receives percentage-complete notifications. Values are
// strictly increasing and each distinct percentage is reported once.
type ProgressSink func(percent int)

// RewriteArgs holds the parameters for a rewrite pass over a FileSet.
type RewriteArgs struct {
	Files    m.FileSet
	Rewriter Rewriter
	DryRun   bool
	Progress ProgressSink
}

// Engine performs the in-place rewrite pass. Files are processed one at a
// time in FileSet order; per-file failures become skips and never abort the
// run.
type Engine interface {
	Rewrite(ctx context.Context, args RewriteArgs) (m.RunStats, error)
}

type engine struct {
	fs adapter.FSAdapter
}

// NewEngine creates an Engine backed by the provided filesystem adapter.
func NewEngine(fs adapter.FSAdapter) Engine {
	return &engine{fs: fs}
}

// Rewrite iterates the FileSet sequentially. Cancellation is honored between
// files; the caller decides whether ctx.Err() counts as a failure.
func (e *engine) Rewrite(ctx context.Context, args RewriteArgs) (m.RunStats, error) {
	stats := m.RunStats{TotalFiles: len(args.Files)}
	if stats.TotalFiles == 0 {
		return stats, nil
	}

	lastPercent := -1

	for i, path := range args.Files {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		e.processFile(path, args, &stats)

		percent := (i + 1) * 100 / stats.TotalFiles
		if percent > lastPercent {
			lastPercent = percent

			if args.Progress != nil {
				args.Progress(percent)
			}
		}
	}

	return stats, nil
}

// processFile runs the per-file state machine: capture ownership, stream the
// rewrite, restore ownership on every exit path. A failure at any step turns
// into a skip.
func (e *engine) processFile(path m.Path, args RewriteArgs, stats *m.RunStats) {
	snap, err := e.fs.Ownership(path)
	if err != nil {
		// Vanished or became unstattable since selection.
		stats.SkippedFiles++
		return
	}

	if !args.DryRun {
		// Restoring ownership needs privilege the process usually lacks;
		// a chown failure here is expected and not counted as a skip.
		defer func() {
			_ = e.fs.RestoreOwnership(path, snap)
		}()
	}

	changed, err := e.rewriteFile(path, args.Rewriter, args.DryRun, snap.Mode.Perm())
	if err != nil {
		stats.SkippedFiles++
		return
	}

	stats.ChangedLines += changed
}

// rewriteFile streams path line by line through the rewriter into a
// temporary sibling, then renames the sibling over the original. On any
// failure the temporary file is discarded and the original is untouched.
// In dry-run mode nothing is written; only the changed-line count is
// computed.
func (e *engine) rewriteFile(path m.Path, rw Rewriter, dryRun bool, perm os.FileMode) (changed int, err error) {
	src, err := e.fs.Open(path)
	if err != nil {
		return 0, err
	}

	defer func() {
		_ = src.Close()
	}()

	var (
		tmp    *os.File
		writer *bufio.Writer
	)

	if !dryRun {
		tmp, err = e.fs.CreateTemp(path)
		if err != nil {
			return 0, err
		}

		defer func() {
			if err != nil {
				_ = tmp.Close()
				_ = e.fs.Remove(m.Path(tmp.Name()))
			}
		}()

		writer = bufio.NewWriter(tmp)
	}

	reader := bufio.NewReader(src)

	for {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return changed, readErr
		}

		if line != "" {
			if !utf8.ValidString(line) {
				return changed, ErrNotText
			}

			body, terminator := splitTerminator(line)

			out := rw.Transform(body)
			if out != body {
				changed++
			}

			if !dryRun {
				if _, werr := writer.WriteString(out + terminator); werr != nil {
					return changed, werr
				}
			}
		}

		if readErr == io.EOF {
			break
		}
	}

	if dryRun {
		return changed, nil
	}

	if err = writer.Flush(); err != nil {
		return changed, err
	}

	if err = tmp.Close(); err != nil {
		return changed, err
	}

	// The temp file was created 0600; carry the original's bits over before
	// it takes the original's place.
	if err = e.fs.Chmod(m.Path(tmp.Name()), perm); err != nil {
		return changed, err
	}

	if err = e.fs.Rename(m.Path(tmp.Name()), path); err != nil {
		return changed, err
	}

	return changed, nil
}

// splitTerminator separates a line's content from its trailing newline so
// patterns are applied to the content only.
func splitTerminator(line string) (body, terminator string) {
	if strings.HasSuffix(line, "\n") {
		return line[:len(line)-1], "\n"
	}

	return line, ""
}
