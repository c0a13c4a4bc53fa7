package orchestrator

// Operator-facing messages printed to the command output.
const (
	// MergingFormat announces a branch before its merge is attempted.
	MergingFormat = "\nMerging %s\n"
	// ConflictGuidance tells the operator how to continue after a conflict.
	ConflictGuidance = "\nResolve the conflicts in the files above and use " +
		"'git commit --no-edit' to commit the merge,\n" +
		"or use 'git merge --abort' to quit.\n"
	// CommitFailureFormat names the branch whose finalizing commit failed.
	CommitFailureFormat = "Failure merging branch %s\n"
)

// Subprocess operation names carried by domain.SubprocessError.
const (
	OperationFetch    = "fetch"
	OperationCheckout = "checkout"
	OperationStatus   = "status"
	OperationCommit   = "commit"
)
