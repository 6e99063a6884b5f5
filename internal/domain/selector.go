package domain

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/mouse-blink/resub/internal/adapter"
	m "github.com/mouse-blink/resub/internal/model"
)

// Selector enumerates the files a run will process. The full tree is walked
// before any rewriting starts, because the total count drives percentage
// progress reporting.
type Selector interface {
	// Select returns every regular file under root whose filename matches
	// at least one of the shell-style glob patterns. An empty pattern list
	// matches all files. Paths matching any exclude regex are dropped.
	Select(root m.Path, patterns []string, exclude []string) (m.FileSet, error)
}

type selector struct {
	fs adapter.FSAdapter
}

// NewSelector creates a Selector backed by the provided filesystem adapter.
func NewSelector(fs adapter.FSAdapter) Selector {
	return &selector{fs: fs}
}

func (s *selector) Select(root m.Path, patterns []string, exclude []string) (m.FileSet, error) {
	absRoot, err := s.fs.Abs(root)
	if err != nil {
		return nil, err
	}

	for _, pattern := range patterns {
		if _, err := filepath.Match(pattern, "probe"); err != nil {
			return nil, fmt.Errorf("invalid file pattern %q: %w", pattern, err)
		}
	}

	excludes := make([]*regexp.Regexp, 0, len(exclude))

	for _, expr := range exclude {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", expr, err)
		}

		excludes = append(excludes, re)
	}

	files := m.FileSet{}

	walkErr := s.fs.Walk(absRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Unlistable directories and entries that vanished mid-walk are
			// left out of the result; selection is best-effort.
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if info.IsDir() || !info.Mode().IsRegular() {
			return nil
		}

		for _, re := range excludes {
			if re.MatchString(path) {
				return nil
			}
		}

		if matchesAny(filepath.Base(path), patterns) {
			files = append(files, m.Path(path))
		}

		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return files, nil
}

// matchesAny reports whether name matches at least one glob pattern. An
// empty pattern list behaves like the single catch-all pattern.
func matchesAny(name string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}

	for _, pattern := range patterns {
		// Patterns were validated up front, so Match cannot fail here.
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}

	return false
}
