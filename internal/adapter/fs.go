// Package adapter contains infrastructure adapters for the resub CLI.
package adapter

import (
	"os"
	"path/filepath"
	"strings"
	"syscall"

	m "github.com/mouse-blink/resub/internal/model"
)

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type directly into the
// domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// FSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when selecting and rewriting files. It intentionally hides
// direct `os` access so the engine logic can be tested without touching the
// disk.
type FSAdapter interface {
	// Walk recursively traverses the provided root path.
	Walk(root m.Path, fn FilepathWalkFunc) error

	// Abs resolves a possibly relative path (including a leading ~) to an
	// absolute one.
	Abs(path m.Path) (m.Path, error)

	// Stat returns metadata for a path so the domain can check existence or
	// distinguish between files and directories when necessary.
	Stat(path m.Path) (os.FileInfo, error)

	// Ownership captures the owner, group and permission bits of a file.
	Ownership(path m.Path) (m.OwnershipSnapshot, error)

	// RestoreOwnership re-applies a previously captured snapshot. Callers
	// decide whether a failure matters; running unprivileged it usually
	// does not.
	RestoreOwnership(path m.Path, snap m.OwnershipSnapshot) error

	// Open opens a file for reading.
	Open(path m.Path) (*os.File, error)

	// CreateTemp creates a temporary sibling file in the same directory as
	// path, so a later rename stays on one filesystem.
	CreateTemp(path m.Path) (*os.File, error)

	// Chmod sets permission bits on a path.
	Chmod(path m.Path, mode os.FileMode) error

	// Rename atomically replaces newpath with oldpath.
	Rename(oldpath, newpath m.Path) error

	// Remove deletes a file.
	Remove(path m.Path) error
}

// LocalFSAdapter is the concrete FSAdapter backed by the host filesystem.
type LocalFSAdapter struct{}

// NewLocalFSAdapter constructs a LocalFSAdapter ready to be wired into the
// workflow.
func NewLocalFSAdapter() *LocalFSAdapter {
	return &LocalFSAdapter{}
}

// Walk iterates over all entries under root, descending into subdirectories.
func (a *LocalFSAdapter) Walk(root m.Path, fn FilepathWalkFunc) error {
	return filepath.Walk(string(root), func(path string, info os.FileInfo, err error) error {
		return fn(path, info, err)
	})
}

// Abs resolves path to an absolute path, expanding a leading ~.
func (a *LocalFSAdapter) Abs(path m.Path) (m.Path, error) {
	pathStr := string(path)

	if strings.HasPrefix(pathStr, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}

		suffix := strings.TrimPrefix(pathStr, "~")
		suffix = strings.TrimPrefix(suffix, string(os.PathSeparator))
		pathStr = filepath.Join(home, suffix)
	}

	if pathStr == "" {
		pathStr = "."
	}

	abs, err := filepath.Abs(pathStr)
	if err != nil {
		return "", err
	}

	return m.Path(abs), nil
}

// Stat returns os.FileInfo metadata for the given path.
func (a *LocalFSAdapter) Stat(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// Ownership captures uid, gid and permission bits for the file at path.
func (a *LocalFSAdapter) Ownership(path m.Path) (m.OwnershipSnapshot, error) {
	info, err := os.Stat(string(path))
	if err != nil {
		return m.OwnershipSnapshot{}, err
	}

	snap := m.OwnershipSnapshot{UID: -1, GID: -1, Mode: info.Mode()}

	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		snap.UID = int(st.Uid)
		snap.GID = int(st.Gid)
	}

	return snap, nil
}

// RestoreOwnership re-applies the captured uid/gid and permission bits.
func (a *LocalFSAdapter) RestoreOwnership(path m.Path, snap m.OwnershipSnapshot) error {
	if err := os.Chmod(string(path), snap.Mode.Perm()); err != nil {
		return err
	}

	if snap.UID < 0 && snap.GID < 0 {
		return nil
	}

	return os.Chown(string(path), snap.UID, snap.GID)
}

// Open opens the file at path for reading.
func (a *LocalFSAdapter) Open(path m.Path) (*os.File, error) {
	// #nosec G304 - path comes from the run's own selection pass
	return os.Open(string(path))
}

// CreateTemp creates a temporary file next to path.
func (a *LocalFSAdapter) CreateTemp(path m.Path) (*os.File, error) {
	return os.CreateTemp(filepath.Dir(string(path)), ".resub-*")
}

// Chmod sets permission bits on a path.
func (a *LocalFSAdapter) Chmod(path m.Path, mode os.FileMode) error {
	return os.Chmod(string(path), mode)
}

// Rename atomically replaces newpath with oldpath.
func (a *LocalFSAdapter) Rename(oldpath, newpath m.Path) error {
	return os.Rename(string(oldpath), string(newpath))
}

// Remove deletes the file at path.
func (a *LocalFSAdapter) Remove(path m.Path) error {
	return os.Remove(string(path))
}
