package plan

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/goap-go/domain/world"
)

// Domain errors for planning.
var (
	// ErrNoPlanFound indicates the search space was exhausted without reaching the goal.
	ErrNoPlanFound = errors.New("no plan found")

	// ErrIncompatibleStateTypes indicates a state variable and a goal requirement
	// share a name but differ in kind.
	ErrIncompatibleStateTypes = errors.New("incompatible state types")

	// ErrSearchExhausted indicates the expansion budget ran out before a plan was found.
	ErrSearchExhausted = errors.New("search budget exhausted")

	// ErrInvalidAction indicates an action cannot take part in planning.
	ErrInvalidAction = errors.New("invalid action")

	// ErrInvalidGoal indicates a goal cannot be planned for.
	ErrInvalidGoal = errors.New("invalid goal")

	// ErrPreconditionFailed indicates a plan step could not run during simulation.
	ErrPreconditionFailed = errors.New("plan step precondition failed")
)

// IncompatibleStateError reports the variable whose kinds did not match.
type IncompatibleStateError struct {
	Variable string
	State    world.Kind
	Goal     world.Kind
}

// Error implements the error interface.
func (e *IncompatibleStateError) Error() string {
	return fmt.Sprintf("%s: %q is %s in state but %s in goal", ErrIncompatibleStateTypes, e.Variable, e.State, e.Goal)
}

// Is matches ErrIncompatibleStateTypes and world.ErrTypeMismatch.
func (e *IncompatibleStateError) Is(target error) bool {
	return target == ErrIncompatibleStateTypes || target == world.ErrTypeMismatch
}
