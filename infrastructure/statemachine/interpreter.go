package statemachine

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"

	"github.com/felixgeelhaar/goap-go/domain/execution"
)

// TransitionPayload carries additional data with a transition event.
type TransitionPayload struct {
	ToStatus execution.Status
	Reason   string
}

// Interpreter wraps the statekit interpreter for one execution.
type Interpreter struct {
	interp *statekit.Interpreter[*Context]
	ctx    *Context
}

// NewInterpreter creates a new interpreter for the execution machine.
func NewInterpreter(machine *statekit.MachineConfig[*Context], ctx *Context) *Interpreter {
	interp := statekit.NewInterpreter(machine)
	interp.UpdateContext(func(c **Context) {
		*c = ctx
	})
	return &Interpreter{
		interp: interp,
		ctx:    ctx,
	}
}

// Start enters the initial state.
func (i *Interpreter) Start() {
	i.interp.Start()
}

// Stop stops the interpreter.
func (i *Interpreter) Stop() {
	i.interp.Stop()
}

// Status returns the machine's current status.
func (i *Interpreter) Status() execution.Status {
	return StatusFromMachine(i.interp.State().Value)
}

// Transition moves the lifecycle to the target status. Success is only
// accepted once the execution's goal holds.
func (i *Interpreter) Transition(to execution.Status, reason string) error {
	exec := i.ctx.Execution
	if !i.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", execution.ErrInvalidTransition, exec.Status, to)
	}
	if to == execution.StatusSucceeded && !exec.GoalReached() {
		return fmt.Errorf("%w: %s", execution.ErrGoalNotReached, exec.Goal.Name)
	}

	i.interp.Send(statekit.Event{
		Type:    EventForTransition(to),
		Payload: TransitionPayload{ToStatus: to, Reason: reason},
	})

	if got := i.Status(); got != to {
		return fmt.Errorf("%w: machine in %s after %s", execution.ErrInvalidTransition, got, to)
	}
	return nil
}

// CanTransition checks if a transition to the target status is possible.
func (i *Interpreter) CanTransition(to execution.Status) bool {
	return i.ctx.Execution.Status.CanTransition(to)
}

// IsTerminal returns true if the interpreter is in a final state.
func (i *Interpreter) IsTerminal() bool {
	return i.interp.Done()
}

// Matches checks if the current state matches the given status.
func (i *Interpreter) Matches(status execution.Status) bool {
	return i.interp.Matches(statekit.StateID(status))
}

// Context returns the interpreter context.
func (i *Interpreter) Context() *Context {
	return i.ctx
}
