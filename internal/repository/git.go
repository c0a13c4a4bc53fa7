package repository

import "context"

// GitRepository exposes the read-only facts about the local checkout that the
// merge run needs before it starts.
type GitRepository interface {
	// WorktreeRoot is the top-level directory of the working tree.
	WorktreeRoot() string
	// GitDir is the directory holding the repository metadata.
	GitDir() string
	RemoteURL(ctx context.Context, remote string) (string, error)
	// DefaultBranch returns the short name of the remote's default branch.
	DefaultBranch(ctx context.Context, remote string) (string, error)
}
