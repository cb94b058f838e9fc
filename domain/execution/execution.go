// Package execution models running a plan against a world: the lifecycle,
// per-step records and the handlers that perform actions.
package execution

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/goap-go/domain/goal"
	"github.com/felixgeelhaar/goap-go/domain/plan"
	"github.com/felixgeelhaar/goap-go/domain/world"
)

// Step records one executed action.
type Step struct {
	Index    int           `json:"index"`
	Action   string        `json:"action"`
	Before   world.State   `json:"-"`
	After    world.State   `json:"-"`
	Duration time.Duration `json:"duration"`
	Error    string        `json:"error,omitempty"`
}

// Succeeded returns true if the step completed without error.
func (s Step) Succeeded() bool {
	return s.Error == ""
}

// Execution is a single run of a plan.
// It is the aggregate root for the execution domain.
type Execution struct {
	ID        string      `json:"id"`
	Goal      goal.Goal   `json:"-"`
	Plan      plan.Plan   `json:"-"`
	Status    Status      `json:"status"`
	State     world.State `json:"-"`
	Steps     []Step      `json:"steps"`
	StartTime time.Time   `json:"start_time"`
	EndTime   time.Time   `json:"end_time,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// New creates a pending execution of p from initial toward g.
func New(id string, g goal.Goal, p plan.Plan, initial world.State) *Execution {
	return &Execution{
		ID:     id,
		Goal:   g,
		Plan:   p,
		Status: StatusPending,
		State:  initial.Clone(),
		Steps:  make([]Step, 0, p.Len()),
	}
}

// TransitionTo moves the lifecycle to status.
func (e *Execution) TransitionTo(status Status) error {
	if !e.Status.CanTransition(status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, e.Status, status)
	}

	now := time.Now()
	switch {
	case status == StatusRunning:
		e.StartTime = now
	case status.IsTerminal():
		e.EndTime = now
		if e.StartTime.IsZero() {
			e.StartTime = now
		}
	}
	e.Status = status
	return nil
}

// Fail moves the execution to failed and records the cause.
func (e *Execution) Fail(err error) error {
	if terr := e.TransitionTo(StatusFailed); terr != nil {
		return terr
	}
	if err != nil {
		e.Error = err.Error()
	}
	return nil
}

// Record appends a step and adopts its resulting state when it succeeded.
func (e *Execution) Record(step Step) {
	e.Steps = append(e.Steps, step)
	if step.Succeeded() && step.After != nil {
		e.State = step.After
	}
}

// NextStep returns the index of the next plan step to run.
func (e *Execution) NextStep() int {
	return len(e.Steps)
}

// GoalReached reports whether the current state satisfies the goal.
func (e *Execution) GoalReached() bool {
	return e.Goal.IsSatisfied(e.State)
}

// IsTerminal returns true if the execution has finished.
func (e *Execution) IsTerminal() bool {
	return e.Status.IsTerminal()
}

// Duration returns the duration of the execution.
func (e *Execution) Duration() time.Duration {
	if e.StartTime.IsZero() {
		return 0
	}
	if e.EndTime.IsZero() {
		return time.Since(e.StartTime)
	}
	return e.EndTime.Sub(e.StartTime)
}
