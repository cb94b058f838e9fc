package statemachine

import (
	"github.com/felixgeelhaar/statekit"

	"github.com/felixgeelhaar/goap-go/domain/execution"
)

// guardCanTransition checks the move against the execution lifecycle.
// Guards receive the context by value; with a *Context machine that is the
// pointer itself.
func guardCanTransition(ctx *Context, event statekit.Event) bool {
	if ctx == nil || ctx.Execution == nil {
		return false
	}
	return ctx.Execution.Status.CanTransition(targetOf(event))
}

// guardGoalReached allows success only once the goal holds.
func guardGoalReached(ctx *Context, _ statekit.Event) bool {
	if ctx == nil || ctx.Execution == nil {
		return false
	}
	return ctx.Execution.GoalReached()
}

// targetOf returns the status an event moves to.
func targetOf(event statekit.Event) execution.Status {
	if payload, ok := event.Payload.(TransitionPayload); ok && payload.ToStatus != "" {
		return payload.ToStatus
	}
	return statusFromEventType(event.Type)
}
