package repository

import (
	"context"

	"github.com/compozy/integrate/internal/domain"
)

// GithubRepository defines the interface for GitHub API operations.
type GithubRepository interface {
	// LabelBranches returns the head branch names of the open pull requests
	// carrying label, in the order the API returns them.
	LabelBranches(ctx context.Context, id domain.RepositoryIdentity, label, token string) ([]string, error)
}
