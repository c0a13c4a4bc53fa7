package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/compozy/integrate/internal/domain"
	"github.com/compozy/integrate/internal/repository"
)

// ResolveBranchesUseCase turns a label into the ordered list of branches to merge.
type ResolveBranchesUseCase struct {
	GithubRepo repository.GithubRepository
}

// Execute queries the open pull requests of id carrying label. The returned
// slice is never nil and keeps the API order.
func (uc *ResolveBranchesUseCase) Execute(
	ctx context.Context,
	id domain.RepositoryIdentity,
	label, credential string,
) ([]string, error) {
	branches, err := uc.GithubRepo.LabelBranches(ctx, id, label, credential)
	if err != nil {
		var transportErr *domain.TransportError
		if errors.As(err, &transportErr) {
			return nil, err
		}
		return nil, &domain.TransportError{Err: fmt.Errorf("label %q on %s: %w", label, id, err)}
	}
	if branches == nil {
		branches = []string{}
	}
	return branches, nil
}
