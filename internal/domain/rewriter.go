// Package domain implements the file selection and rewrite logic for resub.
package domain

import (
	"fmt"
	"regexp"
	"strings"

	m "github.com/mouse-blink/resub/internal/model"
)

// Rewriter transforms a single line according to the run's pattern mode.
// The mode is decided once when the rewriter is built; the per-line hot path
// is a single method dispatch.
type Rewriter interface {
	// Transform returns the line with every occurrence of the find pattern
	// substituted.
	Transform(line string) string

	// Matches returns how many times the find pattern occurs in the line.
	Matches(line string) int
}

// NewRewriter builds a Rewriter for the given find/replace pair. In regex
// mode the find pattern is compiled exactly once, here.
func NewRewriter(find, replace string, mode m.PatternMode) (Rewriter, error) {
	if mode == m.ModeRegex {
		re, err := regexp.Compile(find)
		if err != nil {
			return nil, fmt.Errorf("invalid find pattern %q: %w", find, err)
		}

		return &regexRewriter{re: re, replace: replace}, nil
	}

	return &literalRewriter{find: find, replace: replace}, nil
}

// literalRewriter replaces every non-overlapping occurrence of find,
// leftmost first, with no pattern-language interpretation.
type literalRewriter struct {
	find    string
	replace string
}

func (r *literalRewriter) Transform(line string) string {
	return strings.ReplaceAll(line, r.find, r.replace)
}

func (r *literalRewriter) Matches(line string) int {
	return strings.Count(line, r.find)
}

// regexRewriter substitutes every match of the compiled pattern. The
// replacement may reference capture groups with $1, $2, ...
type regexRewriter struct {
	re      *regexp.Regexp
	replace string
}

func (r *regexRewriter) Transform(line string) string {
	return r.re.ReplaceAllString(line, r.replace)
}

func (r *regexRewriter) Matches(line string) int {
	return len(r.re.FindAllStringIndex(line, -1))
}
