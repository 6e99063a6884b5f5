// Package model defines the data structures for recursive find/replace runs.
package model

// PatternMode selects how the find pattern is interpreted.
type PatternMode string

const (
	// ModeLiteral performs exact substring replacement, no pattern language.
	ModeLiteral PatternMode = "literal"

	// ModeRegex compiles the find pattern as a regular expression once per
	// run. The replacement may reference capture groups with $1, $2, ...
	ModeRegex PatternMode = "regex"
)

// RunConfig is the immutable input of a run, created once from user input.
type RunConfig struct {
	Root         Path
	Find         string
	Replace      string
	Mode         PatternMode
	FilePatterns []string // filename globs; empty means match all files
	Exclude      []string // regexes matched against the full path
	DryRun       bool
	Quiet        bool
}
