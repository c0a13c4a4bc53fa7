package domain

// MergeOutcome classifies the result of merging a single branch.
type MergeOutcome int

const (
	// OutcomeClean means the branch is merged and committed.
	OutcomeClean MergeOutcome = iota
	// OutcomeConflict means the merge left conflicted paths for a human to resolve.
	OutcomeConflict
	// OutcomeCommitFailed means the merge failed without conflicts and the
	// finalizing commit failed too.
	OutcomeCommitFailed
)

func (o MergeOutcome) String() string {
	switch o {
	case OutcomeClean:
		return "clean"
	case OutcomeConflict:
		return "conflict"
	case OutcomeCommitFailed:
		return "commit_failed"
	default:
		return "unknown"
	}
}
