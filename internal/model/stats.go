package model

import "io/fs"

// RunStats accumulates the counters of a single run. It is owned by the
// rewrite engine and never mutated concurrently.
type RunStats struct {
	// ChangedLines counts lines whose content differs after substitution.
	// A line with several occurrences still counts once.
	ChangedLines int
	// SkippedFiles counts files that could not be processed (vanished,
	// permission denied, not valid text).
	SkippedFiles int
	// TotalFiles is the length of the FileSet the run iterated.
	TotalFiles int
}

// OwnershipSnapshot records a file's owner, group and permission bits right
// before it is rewritten, so they can be restored afterwards. It is scoped
// to the processing of a single file.
type OwnershipSnapshot struct {
	UID  int
	GID  int
	Mode fs.FileMode
}
