package usecase

import (
	"context"

	"github.com/compozy/integrate/internal/domain"
	"github.com/compozy/integrate/internal/service"
)

// MergeResult is the classified result of merging one branch.
type MergeResult struct {
	Outcome         domain.MergeOutcome
	ConflictedPaths []string
	// MergeErr is the merge failure, if the merge command did not succeed.
	MergeErr error
	// CommitErr is set when the finalizing commit failed.
	CommitErr error
}

// MergeBranchUseCase merges a single remote branch and classifies the result.
type MergeBranchUseCase struct {
	GitSvc service.GitService
	Remote string
}

// Execute merges <remote>/<branch> into the current checkout.
//
// A failed merge is only a conflict when the index holds unmerged paths.
// Otherwise the pending merge is finalized with a plain commit, and only a
// failure of that commit makes the outcome CommitFailed. The returned error is
// reserved for a failure to inspect repository status.
func (uc *MergeBranchUseCase) Execute(ctx context.Context, branch string) (*MergeResult, error) {
	mergeErr := uc.GitSvc.Merge(ctx, uc.ref(branch))
	if mergeErr == nil {
		return &MergeResult{Outcome: domain.OutcomeClean}, nil
	}
	paths, err := uc.GitSvc.ConflictedPaths(ctx)
	if err != nil {
		return nil, &domain.SubprocessError{Operation: "status", Branch: branch, Err: err}
	}
	if len(paths) > 0 {
		return &MergeResult{Outcome: domain.OutcomeConflict, ConflictedPaths: paths, MergeErr: mergeErr}, nil
	}
	if err := uc.GitSvc.CommitNoEdit(ctx); err != nil {
		return &MergeResult{Outcome: domain.OutcomeCommitFailed, MergeErr: mergeErr, CommitErr: err}, nil
	}
	return &MergeResult{Outcome: domain.OutcomeClean, MergeErr: mergeErr}, nil
}

func (uc *MergeBranchUseCase) ref(branch string) string {
	if uc.Remote == "" {
		return "origin/" + branch
	}
	return uc.Remote + "/" + branch
}
