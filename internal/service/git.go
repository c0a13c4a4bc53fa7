package service

import "context"

// GitService runs the version-control primitives the merge run is built from.
// Every method is a single git subprocess; a nil error means it exited zero.
type GitService interface {
	// FetchAll fetches every configured remote.
	FetchAll(ctx context.Context) error
	// ResetBranch creates or resets branch at startPoint and checks it out
	// without configuring upstream tracking.
	ResetBranch(ctx context.Context, branch, startPoint string) error
	// Merge merges ref with a merge commit, a merge log and rerere autoupdate.
	Merge(ctx context.Context, ref string) error
	// CommitNoEdit finalizes a pending merge with the prepared message.
	CommitNoEdit(ctx context.Context) error
	// ConflictedPaths lists paths left unmerged in the index.
	ConflictedPaths(ctx context.Context) ([]string, error)
}
