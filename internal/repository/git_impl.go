package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

// ErrNoDefaultBranch is returned when the remote default branch cannot be detected.
var ErrNoDefaultBranch = errors.New("could not detect the remote default branch")

// LocalRepository implements GitRepository on top of go-git.
type LocalRepository struct {
	repo *git.Repository
	root string
}

// NewGitRepository opens the repository containing path, walking up parent
// directories like git itself does. Linked worktrees share config and refs
// with the main repository through its common dir.
func NewGitRepository(path string) (*LocalRepository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}
	root := path
	if wt, err := repo.Worktree(); err == nil {
		root = wt.Filesystem.Root()
	}
	return &LocalRepository{repo: repo, root: root}, nil
}

// NewGitRepositoryFromWorkingDir opens the repository containing the process working directory.
func NewGitRepositoryFromWorkingDir() (*LocalRepository, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewGitRepository(wd)
}

// Repository returns the underlying go-git repository.
func (r *LocalRepository) Repository() *git.Repository {
	return r.repo
}

// WorktreeRoot returns the top-level directory of the working tree.
func (r *LocalRepository) WorktreeRoot() string {
	return r.root
}

// GitDir returns the metadata directory, usually <root>/.git.
func (r *LocalRepository) GitDir() string {
	if fsStorage, ok := r.repo.Storer.(*filesystem.Storage); ok {
		return fsStorage.Filesystem().Root()
	}
	return filepath.Join(r.root, git.GitDirName)
}

// RemoteURL returns the first URL configured for remote.
func (r *LocalRepository) RemoteURL(_ context.Context, remote string) (string, error) {
	rem, err := r.repo.Remote(remote)
	if err != nil {
		return "", fmt.Errorf("failed to get remote %s: %w", remote, err)
	}
	urls := rem.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no url", remote)
	}
	return urls[0], nil
}

// DefaultBranch resolves refs/remotes/<remote>/HEAD and falls back to the
// conventional main and master branches.
func (r *LocalRepository) DefaultBranch(_ context.Context, remote string) (string, error) {
	head, err := r.repo.Reference(plumbing.NewRemoteHEADReferenceName(remote), false)
	if err == nil && head.Type() == plumbing.SymbolicReference {
		prefix := remote + "/"
		if short := head.Target().Short(); strings.HasPrefix(short, prefix) {
			return strings.TrimPrefix(short, prefix), nil
		}
	}
	for _, candidate := range []string{"main", "master"} {
		if _, err := r.repo.Reference(plumbing.NewRemoteReferenceName(remote, candidate), false); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w for remote %s", ErrNoDefaultBranch, remote)
}
