package model

// Path represents a file system path.
type Path string

// FileSet is the ordered list of absolute file paths a run will process.
// It is materialized in full before any rewriting starts so the total count
// can drive percentage progress.
type FileSet []Path

// FileMatch pairs a selected file with the number of lines the find pattern
// matches in it. Produced by the read-only list workflow.
type FileMatch struct {
	Path    Path
	Matches int
}
