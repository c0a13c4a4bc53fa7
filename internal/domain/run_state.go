package domain

import (
	"time"
)

// RunState is a step of the merge run state machine.
type RunState string

const (
	RunStateStart               RunState = "start"
	RunStateFetched             RunState = "fetched"
	RunStateOnDestinationBranch RunState = "on_destination_branch"
	RunStateResolving           RunState = "resolving"
	RunStateMergingBranch       RunState = "merging_branch"
	RunStateDone                RunState = "done"
	RunStateAborted             RunState = "aborted"
)

// Transition records entering a state, with the branch for merge steps.
type Transition struct {
	State  RunState
	Branch string
	At     time.Time
}

// RunReport describes what a single run did. It lives for one invocation only.
type RunReport struct {
	RunID       string
	Label       string
	Destination string
	Branches    []string
	Merged      []string
	Transitions []Transition
	Outcome     MergeOutcome
	StartedAt   time.Time
	FinishedAt  time.Time
	Err         error
}

// NewRunReport creates a report positioned at the start state.
func NewRunReport(runID, label, destination string) *RunReport {
	now := time.Now()
	return &RunReport{
		RunID:       runID,
		Label:       label,
		Destination: destination,
		Transitions: []Transition{{State: RunStateStart, At: now}},
		StartedAt:   now,
	}
}

// Enter appends a transition to state.
func (r *RunReport) Enter(state RunState, branch string) {
	r.Transitions = append(r.Transitions, Transition{State: state, Branch: branch, At: time.Now()})
}

// State returns the most recently entered state.
func (r *RunReport) State() RunState {
	if len(r.Transitions) == 0 {
		return RunStateStart
	}
	return r.Transitions[len(r.Transitions)-1].State
}

// MarkMerged records a branch that merged cleanly.
func (r *RunReport) MarkMerged(branch string) {
	r.Merged = append(r.Merged, branch)
}

// Abort moves the report to the aborted state and keeps the cause.
func (r *RunReport) Abort(err error) {
	r.Enter(RunStateAborted, "")
	r.Err = err
	r.FinishedAt = time.Now()
}

// Finish moves the report to the done state.
func (r *RunReport) Finish() {
	r.Enter(RunStateDone, "")
	r.FinishedAt = time.Now()
}

// MergeAttempted reports whether the run reached a merge step, which is
// when Outcome starts to carry meaning.
func (r *RunReport) MergeAttempted() bool {
	for _, t := range r.Transitions {
		if t.State == RunStateMergingBranch {
			return true
		}
	}
	return false
}

// States lists the visited states in order.
func (r *RunReport) States() []RunState {
	states := make([]RunState, 0, len(r.Transitions))
	for _, t := range r.Transitions {
		states = append(states, t.State)
	}
	return states
}
