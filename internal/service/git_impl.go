package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// unmergedStatuses are the porcelain XY codes git uses for conflicted paths.
var unmergedStatuses = map[string]bool{
	"DD": true,
	"AU": true,
	"UD": true,
	"UA": true,
	"DU": true,
	"AA": true,
	"UU": true,
}

// gitService implements the GitService interface with the git CLI.
type gitService struct {
	binary string
	dir    string
	stdout io.Writer
	stderr io.Writer
	logger *zap.Logger
}

// GitServiceOption configures a gitService.
type GitServiceOption func(*gitService)

// WithOutput sends git's own output to stdout and stderr instead of the process streams.
func WithOutput(stdout, stderr io.Writer) GitServiceOption {
	return func(s *gitService) {
		s.stdout = stdout
		s.stderr = stderr
	}
}

// WithLogger sets the logger used for command tracing.
func WithLogger(logger *zap.Logger) GitServiceOption {
	return func(s *gitService) {
		s.logger = logger
	}
}

// NewGitService creates a GitService running binary inside dir.
func NewGitService(binary, dir string, opts ...GitServiceOption) GitService {
	s := &gitService{
		binary: binary,
		dir:    dir,
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *gitService) FetchAll(ctx context.Context) error {
	return s.run(ctx, "fetch", "--all")
}

func (s *gitService) ResetBranch(ctx context.Context, branch, startPoint string) error {
	return s.run(ctx, "checkout", "--no-track", "-B", branch, startPoint)
}

func (s *gitService) Merge(ctx context.Context, ref string) error {
	return s.run(ctx, "merge", "--no-ff", "--no-edit", "--rerere-autoupdate", "--log", ref)
}

func (s *gitService) CommitNoEdit(ctx context.Context) error {
	return s.run(ctx, "commit", "--no-edit")
}

func (s *gitService) ConflictedPaths(ctx context.Context) ([]string, error) {
	var out bytes.Buffer
	cmd := s.command(ctx, "status", "--porcelain=v1", "-z")
	cmd.Stdout = &out
	cmd.Stderr = s.stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git status failed: %w", err)
	}
	return ParseConflictedPaths(out.String()), nil
}

// run executes git with its output attached to the configured streams.
func (s *gitService) run(ctx context.Context, args ...string) error {
	cmd := s.command(ctx, args...)
	cmd.Stdout = s.stdout
	cmd.Stderr = s.stderr
	if err := cmd.Run(); err != nil {
		s.logger.Debug("git command failed", zap.Strings("args", args), zap.Error(err))
		return fmt.Errorf("git %s failed: %w", args[0], err)
	}
	return nil
}

func (s *gitService) command(ctx context.Context, args ...string) *exec.Cmd {
	s.logger.Debug("running git", zap.String("dir", s.dir), zap.Strings("args", args))
	cmd := exec.CommandContext(ctx, s.binary, args...)
	cmd.Dir = s.dir
	return cmd
}

// ParseConflictedPaths extracts unmerged paths from `git status --porcelain=v1 -z` output.
func ParseConflictedPaths(porcelain string) []string {
	var paths []string
	entries := strings.Split(porcelain, "\x00")
	for i := 0; i < len(entries); i++ {
		entry := entries[i]
		if len(entry) < 4 {
			continue
		}
		code := entry[:2]
		if unmergedStatuses[code] {
			paths = append(paths, entry[3:])
		}
		// renames and copies carry their source path as the next entry
		if code[0] == 'R' || code[0] == 'C' {
			i++
		}
	}
	return paths
}
