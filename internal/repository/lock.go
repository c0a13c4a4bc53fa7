package repository

import (
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is created inside the git directory while a run is active.
const LockFileName = "integrate.lock"

// RunLock guards the working tree against concurrent runs.
type RunLock interface {
	TryLock() (bool, error)
	Unlock() error
	Path() string
}

// NewRunLock returns a file lock stored in gitDir.
func NewRunLock(gitDir string) RunLock {
	return flock.New(filepath.Join(gitDir, LockFileName))
}
