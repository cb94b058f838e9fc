package execution

import "errors"

// Domain errors for plan execution.
var (
	// ErrInvalidTransition indicates a lifecycle transition that is not allowed.
	ErrInvalidTransition = errors.New("invalid execution transition")

	// ErrPreconditionFailed indicates a step's preconditions did not hold
	// when it was about to run.
	ErrPreconditionFailed = errors.New("step precondition failed")

	// ErrHandlerFailed indicates an action handler returned an error.
	ErrHandlerFailed = errors.New("action handler failed")

	// ErrGoalNotReached indicates every step ran but the goal is not satisfied.
	ErrGoalNotReached = errors.New("goal not reached")

	// ErrNoHandler indicates no handler is registered for an action.
	ErrNoHandler = errors.New("no handler for action")
)
