// Package api provides the public API for the goap-go library.
//
// goap-go is a goal-oriented action planner: given a starting world, a goal
// and a library of actions, it computes the cheapest ordered sequence of
// actions that turns the start into a world satisfying the goal.
//
// # Quick Start
//
//	initial := api.NewStateBuilder().
//	    Bool("has_axe", true).
//	    Bool("has_wood", false).
//	    MustBuild()
//
//	getWood := api.NewGoalBuilder("get_wood").
//	    Requires("has_wood", true).
//	    MustBuild()
//
//	actions := []api.Action{
//	    api.NewActionBuilder("move_to_tree").Sets("at_tree", true).MustBuild(),
//	    api.NewActionBuilder("chop_tree").Cost(2).
//	        Requires("has_axe", true).
//	        Requires("at_tree", true).
//	        Sets("has_wood", true).
//	        MustBuild(),
//	}
//
//	p, err := api.NewPlanner().Plan(ctx, initial, getWood, actions)
//
// # World State
//
// A State maps names to typed variables: Bool, Integer, Decimal (fixed
// point with three decimal places) and Text. Numeric requirements are
// thresholds: a state satisfies x >= required. Bool and Text require
// equality.
//
// # Errors
//
// Planning fails with ErrNoPlanFound when the goal cannot be reached, and
// with an *IncompatibleStateError when the state and goal disagree on the
// kind of a variable.
package api

import (
	"fmt"

	"github.com/felixgeelhaar/goap-go/domain/action"
	"github.com/felixgeelhaar/goap-go/domain/goal"
	"github.com/felixgeelhaar/goap-go/domain/plan"
	"github.com/felixgeelhaar/goap-go/domain/world"
)

// Re-export core types.
type (
	// State is a world state.
	State = world.State
	// Variable is a typed state value.
	Variable = world.Variable
	// Kind identifies a Variable's variant.
	Kind = world.Kind
	// Effect is a single action effect.
	Effect = world.Effect
	// Effects maps variable names to effects.
	Effects = world.Effects
	// StateBuilder builds states fluently.
	StateBuilder = world.Builder

	// Action is a planning action.
	Action = action.Action
	// ActionBuilder builds actions fluently.
	ActionBuilder = action.Builder

	// Goal is a planning goal.
	Goal = goal.Goal
	// GoalSet is a collection of goals ordered by priority.
	GoalSet = goal.Set
	// GoalBuilder builds goals fluently.
	GoalBuilder = goal.Builder

	// Plan is the result of planning.
	Plan = plan.Plan
	// PlanStats holds search counters.
	PlanStats = plan.Stats
	// Planner computes plans.
	Planner = plan.Planner
	// IncompatibleStateError reports a kind mismatch between state and goal.
	IncompatibleStateError = plan.IncompatibleStateError
)

// Variable kinds.
const (
	KindBool    = world.KindBool
	KindInteger = world.KindInteger
	KindDecimal = world.KindDecimal
	KindText    = world.KindText
)

// Re-export errors.
var (
	ErrNoPlanFound            = plan.ErrNoPlanFound
	ErrIncompatibleStateTypes = plan.ErrIncompatibleStateTypes
	ErrSearchExhausted        = plan.ErrSearchExhausted
	ErrInvalidAction          = plan.ErrInvalidAction
	ErrInvalidGoal            = plan.ErrInvalidGoal
	ErrTypeMismatch           = world.ErrTypeMismatch
)

// Variable constructors

// Bool creates a boolean variable.
func Bool(v bool) Variable { return world.Bool(v) }

// Int creates an integer variable.
func Int(v int64) Variable { return world.Int(v) }

// Decimal creates a decimal variable rounded to three decimal places.
func Decimal(v float64) Variable { return world.Decimal(v) }

// Text creates a text variable.
func Text(v string) Variable { return world.Text(v) }

// Enum stores an enum value as text using its String form.
func Enum(v fmt.Stringer) Variable { return world.Enum(v) }

// NewState creates an empty state.
func NewState() State {
	return world.NewState()
}

// NewStateBuilder creates a state builder.
func NewStateBuilder() *StateBuilder {
	return world.NewBuilder()
}

// Get reads the variable name from s as T.
func Get[T world.Scalar](s State, name string) (T, bool) {
	return world.Get[T](s, name)
}

// GetOr reads the variable name from s as T, or returns def.
func GetOr[T world.Scalar](s State, name string, def T) T {
	return world.GetOr(s, name, def)
}

// Action and goal constructors

// NewAction creates an action from its parts.
func NewAction(name string, cost float64, preconditions State, effects Effects) Action {
	return action.New(name, cost, preconditions, effects)
}

// NewActionBuilder creates a new action builder.
func NewActionBuilder(name string) *ActionBuilder {
	return action.NewBuilder(name)
}

// NewGoal creates a goal from its parts.
func NewGoal(name string, desired State, priority int) Goal {
	return goal.New(name, desired, priority)
}

// NewGoalBuilder creates a new goal builder.
func NewGoalBuilder(name string) *GoalBuilder {
	return goal.NewBuilder(name)
}

// Effect constructors

// SetEffect assigns v.
func SetEffect(v Variable) Effect { return world.Set(v) }

// AddEffect increments an integer, or a decimal by raw scaled units.
func AddEffect(delta int64) Effect { return world.Add(delta) }

// SubtractEffect decrements an integer, or a decimal by raw scaled units.
func SubtractEffect(delta int64) Effect { return world.Subtract(delta) }
