package usecase

import (
	"context"

	"github.com/compozy/integrate/internal/domain"
	"github.com/stretchr/testify/mock"
)

// Mock for GitService
type mockGitService struct{ mock.Mock }

func (m *mockGitService) FetchAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *mockGitService) ResetBranch(ctx context.Context, branch, startPoint string) error {
	args := m.Called(ctx, branch, startPoint)
	return args.Error(0)
}
func (m *mockGitService) Merge(ctx context.Context, ref string) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}
func (m *mockGitService) CommitNoEdit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *mockGitService) ConflictedPaths(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if paths := args.Get(0); paths != nil {
		return paths.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

// Mock for GithubRepository
type mockGithubRepository struct{ mock.Mock }

func (m *mockGithubRepository) LabelBranches(
	ctx context.Context,
	id domain.RepositoryIdentity,
	label, token string,
) ([]string, error) {
	args := m.Called(ctx, id, label, token)
	if branches := args.Get(0); branches != nil {
		return branches.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}
