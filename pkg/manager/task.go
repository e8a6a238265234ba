package manager

import (
	"fmt"
	"time"

	"github.com/kasuboski/rawz/pkg/download"
	"github.com/kasuboski/rawz/pkg/episode"
	"github.com/kasuboski/rawz/pkg/machine"
	"github.com/kasuboski/rawz/pkg/release"
)

// State is where a download task is in its lifecycle. Every state other than
// pending and submitted is terminal and doubles as the task's outcome.
type State string

const (
	Pending          State = "pending"
	Submitted        State = "submitted"
	Unavailable      State = "unavailable"
	Capped           State = "capped"
	SubmissionFailed State = "submission_failed"
	Completed        State = "completed"
	TimedOut         State = "timed_out"
	Canceled         State = "canceled"
)

var taskTransitions = []machine.Allowable[State]{
	machine.From(Pending).To(Submitted, Unavailable, Capped, SubmissionFailed),
	machine.From(Submitted).To(Completed, TimedOut, Canceled),
}

// Task is one release being driven through the backend
type Task struct {
	Release     release.Release
	Episode     episode.ID
	Destination string
	Handle      download.Handle
	SubmittedAt time.Time
	Err         error

	state *machine.StateMachine[State]
}

func newTask(entry release.Entry, destination string) *Task {
	return &Task{
		Release:     entry.Release,
		Episode:     entry.ID,
		Destination: destination,
		state:       machine.New(Pending, taskTransitions...),
	}
}

func (t *Task) State() State {
	return t.state.Current()
}

func (t *Task) transition(s State) error {
	return t.state.ToState(s)
}

// SubmissionError is recorded on a task the backend refused
type SubmissionError struct {
	Release release.Release
	Err     error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("failed to submit %q: %v", e.Release.RemoteName, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// TimeoutError is recorded on a task that outlived its deadline. The transfer itself is left running.
type TimeoutError struct {
	Handle  download.Handle
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("transfer %s did not finish within %s", e.Handle.ID, e.Timeout)
}

// TaskResult is the final view of a task
type TaskResult struct {
	Release     release.Release `json:"release"`
	Episode     string          `json:"episode"`
	Destination string          `json:"destination"`
	Handle      download.Handle `json:"handle"`
	Outcome     State           `json:"outcome"`
	Err         error           `json:"-"`
}

func (t *Task) result() TaskResult {
	return TaskResult{
		Release:     t.Release,
		Episode:     t.Episode.String(),
		Destination: t.Destination,
		Handle:      t.Handle,
		Outcome:     t.State(),
		Err:         t.Err,
	}
}

// Report summarizes one run, one result per release in group order
type Report struct {
	RunID   string       `json:"runId"`
	Show    string       `json:"show"`
	Tag     string       `json:"tag"`
	Results []TaskResult `json:"results"`
}

// Count returns how many results ended with outcome
func (r Report) Count(outcome State) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == outcome {
			n++
		}
	}
	return n
}
