// Package statemachine provides the statekit integration for the plan
// execution lifecycle.
package statemachine

import (
	"github.com/felixgeelhaar/statekit"

	"github.com/felixgeelhaar/goap-go/domain/execution"
)

// Context carries the execution through the state machine.
type Context struct {
	Execution *execution.Execution
}

// NewContext creates a new machine context.
func NewContext(exec *execution.Execution) *Context {
	return &Context{Execution: exec}
}

// State IDs as StateID type for statekit.
const (
	statePending   statekit.StateID = statekit.StateID(execution.StatusPending)
	stateRunning   statekit.StateID = statekit.StateID(execution.StatusRunning)
	stateSucceeded statekit.StateID = statekit.StateID(execution.StatusSucceeded)
	stateFailed    statekit.StateID = statekit.StateID(execution.StatusFailed)
)

// Lifecycle events.
const (
	EventStart   statekit.EventType = "START"
	EventSucceed statekit.EventType = "SUCCEED"
	EventFail    statekit.EventType = "FAIL"
)

// machineID identifies the execution statechart.
const machineID = "execution"

// NewExecutionMachine creates the execution lifecycle statechart.
func NewExecutionMachine() (*statekit.MachineConfig[*Context], error) {
	return statekit.NewMachine[*Context](machineID).
		WithInitial(statePending).
		WithContext(&Context{}).
		// Register actions
		WithAction("logEntry", logStateEntry).
		WithAction("applyTransition", applyTransition).
		// Register guards
		WithGuard("canTransition", guardCanTransition).
		WithGuard("goalReached", guardGoalReached).
		// Define states
		State(statePending).
			OnEntry("logEntry").
			On(EventStart).Target(stateRunning).Guard("canTransition").Do("applyTransition").
			On(EventFail).Target(stateFailed).Guard("canTransition").Do("applyTransition").
			Done().
		State(stateRunning).
			OnEntry("logEntry").
			On(EventSucceed).Target(stateSucceeded).Guard("canTransition").Guard("goalReached").Do("applyTransition").
			On(EventFail).Target(stateFailed).Guard("canTransition").Do("applyTransition").
			Done().
		State(stateSucceeded).
			Final().
			OnEntry("logEntry").
			Done().
		State(stateFailed).
			Final().
			OnEntry("logEntry").
			Done().
		Build()
}

// EventForTransition returns the event type for a lifecycle transition.
func EventForTransition(to execution.Status) statekit.EventType {
	switch to {
	case execution.StatusRunning:
		return EventStart
	case execution.StatusSucceeded:
		return EventSucceed
	case execution.StatusFailed:
		return EventFail
	default:
		return statekit.EventType(to)
	}
}

// StatusFromMachine converts the machine state ID to a domain Status.
func StatusFromMachine(stateID statekit.StateID) execution.Status {
	return execution.Status(stateID)
}

// statusFromEventType derives the target status from an event type.
func statusFromEventType(eventType statekit.EventType) execution.Status {
	switch eventType {
	case EventStart:
		return execution.StatusRunning
	case EventSucceed:
		return execution.StatusSucceeded
	case EventFail:
		return execution.StatusFailed
	default:
		return execution.Status(eventType)
	}
}
