// Package goal defines planning goals.
package goal

import (
	"fmt"

	"github.com/felixgeelhaar/goap-go/domain/world"
)

// Goal is a named partial world state the planner tries to reach.
// Only the variables in Desired are constrained.
type Goal struct {
	Name     string
	Desired  world.State
	Priority int
}

// New creates a goal. A nil desired state is replaced by an empty one.
func New(name string, desired world.State, priority int) Goal {
	if desired == nil {
		desired = world.NewState()
	}
	return Goal{Name: name, Desired: desired, Priority: priority}
}

// IsSatisfied reports whether state meets every desired variable.
func (g Goal) IsSatisfied(state world.State) bool {
	return state.Satisfies(g.Desired)
}

// IsRequirementMet reports whether state meets the single requirement name.
// Unknown requirements are considered met.
func (g Goal) IsRequirementMet(name string, state world.State) bool {
	req, ok := g.Desired[name]
	if !ok {
		return true
	}
	return state.Satisfies(world.State{name: req})
}

// Distance returns the heuristic distance from state to the goal.
func (g Goal) Distance(state world.State) (uint64, error) {
	return state.Distance(g.Desired)
}

// WithRequirement returns a copy of the goal requiring name to hold v.
func (g Goal) WithRequirement(name string, v world.Variable) Goal {
	desired := g.Desired.Clone()
	desired[name] = v
	return Goal{Name: g.Name, Desired: desired, Priority: g.Priority}
}

// WithoutRequirement returns a copy of the goal without the requirement name.
func (g Goal) WithoutRequirement(name string) Goal {
	desired := g.Desired.Clone()
	delete(desired, name)
	return Goal{Name: g.Name, Desired: desired, Priority: g.Priority}
}

// WithPriority returns a copy of the goal with a new priority.
func (g Goal) WithPriority(priority int) Goal {
	return Goal{Name: g.Name, Desired: g.Desired.Clone(), Priority: priority}
}

// Validate checks that the goal can be planned for.
func (g Goal) Validate() error {
	if g.Name == "" {
		return ErrEmptyName
	}
	for name, v := range g.Desired {
		if !v.IsValid() {
			return fmt.Errorf("%w: %q", ErrInvalidRequirement, name)
		}
	}
	return nil
}

// Requirement reads the desired value of name as T.
func Requirement[T world.Scalar](g Goal, name string) (T, bool) {
	return world.Get[T](g.Desired, name)
}

// String renders the goal.
func (g Goal) String() string {
	return fmt.Sprintf("%s (priority: %d) %s", g.Name, g.Priority, g.Desired)
}
