package statemachine

import (
	"errors"

	"github.com/felixgeelhaar/statekit"

	"github.com/felixgeelhaar/goap-go/domain/execution"
	"github.com/felixgeelhaar/goap-go/infrastructure/logging"
)

// logStateEntry logs when entering a state. Actions receive a pointer to the
// context; with a *Context machine that is **Context.
func logStateEntry(ctx **Context, _ statekit.Event) {
	if ctx == nil || *ctx == nil || (*ctx).Execution == nil {
		return
	}

	exec := (*ctx).Execution
	logging.Debug().
		Add(logging.ExecutionID(exec.ID)).
		Add(logging.Phase(exec.Status.String())).
		Msg("execution state entered")
}

// applyTransition moves the execution to the event's target status. A
// failure carries the payload reason as its error.
func applyTransition(ctx **Context, event statekit.Event) {
	if ctx == nil || *ctx == nil || (*ctx).Execution == nil {
		return
	}

	exec := (*ctx).Execution
	to := targetOf(event)

	var err error
	if payload, ok := event.Payload.(TransitionPayload); ok && to == execution.StatusFailed && payload.Reason != "" {
		err = exec.Fail(errors.New(payload.Reason))
	} else {
		err = exec.TransitionTo(to)
	}

	if err != nil {
		logging.Warn().
			Add(logging.ExecutionID(exec.ID)).
			Add(logging.ErrorField(err)).
			Msg("execution transition rejected")
	}
}
