// Package plan defines the result of planning and the planner port.
package plan

import (
	"context"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/goap-go/domain/action"
	"github.com/felixgeelhaar/goap-go/domain/goal"
	"github.com/felixgeelhaar/goap-go/domain/world"
)

// Planner computes a plan reaching goal from initial using actions.
type Planner interface {
	Plan(ctx context.Context, initial world.State, g goal.Goal, actions []action.Action) (Plan, error)
}

// Stats holds search counters.
type Stats struct {
	// Expanded is the number of states popped and expanded.
	Expanded int
	// Generated is the number of successor states pushed to the open set.
	Generated int
}

// Plan is an ordered sequence of actions with its total cost.
// The empty plan is valid when the initial state already satisfies the goal.
type Plan struct {
	Actions []action.Action
	Cost    float64
	Stats   Stats
}

// Len returns the number of steps.
func (p Plan) Len() int {
	return len(p.Actions)
}

// IsEmpty returns true if the plan has no steps.
func (p Plan) IsEmpty() bool {
	return len(p.Actions) == 0
}

// Names returns the action names in order.
func (p Plan) Names() []string {
	names := make([]string, len(p.Actions))
	for i, a := range p.Actions {
		names[i] = a.Name
	}
	return names
}

// Simulate applies the plan to initial and returns every intermediate state,
// starting with initial itself. It fails if a step's preconditions do not
// hold.
func (p Plan) Simulate(initial world.State) ([]world.State, error) {
	states := make([]world.State, 0, len(p.Actions)+1)
	current := initial.Clone()
	states = append(states, current)
	for i, a := range p.Actions {
		if !a.CanExecute(current) {
			return states, fmt.Errorf("%w: step %d (%s) in %s", ErrPreconditionFailed, i+1, a.Name, current)
		}
		current = a.ApplyEffect(current)
		states = append(states, current)
	}
	return states, nil
}

// String renders the plan with one line per step.
func (p Plan) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Plan (total cost: %.1f):", p.Cost)
	for i, a := range p.Actions {
		fmt.Fprintf(&b, "\nStep %d: %s", i+1, a.Name)
	}
	return b.String()
}
