package usecase

import (
	"context"

	"github.com/compozy/integrate/internal/domain"
	"github.com/compozy/integrate/internal/service"
)

// ResetDestinationUseCase positions the checkout on a fresh destination branch.
type ResetDestinationUseCase struct {
	GitSvc service.GitService
}

// Execute creates or resets destination at baseRef and checks it out.
func (uc *ResetDestinationUseCase) Execute(ctx context.Context, destination, baseRef string) error {
	if err := uc.GitSvc.ResetBranch(ctx, destination, baseRef); err != nil {
		return &domain.SubprocessError{Operation: "checkout", Branch: destination, Err: err}
	}
	return nil
}
