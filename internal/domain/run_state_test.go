package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunReport(t *testing.T) {
	t.Run("Should start in the start state", func(t *testing.T) {
		r := NewRunReport("id", "ready", "release")
		assert.Equal(t, RunStateStart, r.State())
		assert.False(t, r.StartedAt.IsZero())
	})
	t.Run("Should record transitions in order", func(t *testing.T) {
		r := NewRunReport("id", "ready", "release")
		r.Enter(RunStateFetched, "")
		r.Enter(RunStateOnDestinationBranch, "")
		r.Enter(RunStateResolving, "")
		r.Enter(RunStateMergingBranch, "feature-a")
		r.MarkMerged("feature-a")
		r.Finish()
		assert.Equal(t, []RunState{
			RunStateStart,
			RunStateFetched,
			RunStateOnDestinationBranch,
			RunStateResolving,
			RunStateMergingBranch,
			RunStateDone,
		}, r.States())
		assert.Equal(t, []string{"feature-a"}, r.Merged)
		assert.Equal(t, "feature-a", r.Transitions[4].Branch)
		assert.False(t, r.FinishedAt.IsZero())
	})
	t.Run("Should keep the cause when aborted", func(t *testing.T) {
		r := NewRunReport("id", "ready", "release")
		cause := errors.New("boom")
		r.Abort(cause)
		assert.Equal(t, RunStateAborted, r.State())
		assert.Equal(t, cause, r.Err)
	})
	t.Run("Should report a merge attempt only after a merge step", func(t *testing.T) {
		r := NewRunReport("id", "ready", "release")
		r.Enter(RunStateFetched, "")
		assert.False(t, r.MergeAttempted())
		r.Enter(RunStateMergingBranch, "feature-a")
		assert.True(t, r.MergeAttempted())
	})
}
