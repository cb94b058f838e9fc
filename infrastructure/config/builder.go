package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/felixgeelhaar/goap-go/domain/action"
	domainconfig "github.com/felixgeelhaar/goap-go/domain/config"
	"github.com/felixgeelhaar/goap-go/domain/goal"
	"github.com/felixgeelhaar/goap-go/domain/world"
	"github.com/felixgeelhaar/goap-go/infrastructure/planner"
)

// Builder turns a scenario into planning values.
type Builder struct {
	scenario *domainconfig.Scenario
	kinds    map[string]string
}

// NewBuilder creates a new scenario builder.
func NewBuilder(s *domainconfig.Scenario) *Builder {
	return &Builder{scenario: s}
}

// BuildResult contains the planning values built from a scenario.
type BuildResult struct {
	// Name is the scenario name.
	Name string
	// Initial is the starting world.
	Initial world.State
	// Goals are all goals, highest priority first.
	Goals goal.Set
	// Actions is the action library in document order.
	Actions []action.Action
	// PlannerOptions configure the A* planner.
	PlannerOptions []planner.Option
	// Timeout bounds one planning call (0 = none).
	Timeout time.Duration
	// Resilience configures action handlers during execution.
	Resilience domainconfig.ResilienceConfig
}

// Goal returns the highest-priority goal.
func (r *BuildResult) Goal() (goal.Goal, bool) {
	return r.Goals.Highest()
}

// Compile builds the planning values of s.
func Compile(s *domainconfig.Scenario) (*BuildResult, error) {
	return NewBuilder(s).Build()
}

// Build builds the planning values. Every conversion failure is reported.
func (b *Builder) Build() (*BuildResult, error) {
	s := b.scenario
	b.kinds = declaredKinds(s)

	var errs []error
	result := &BuildResult{
		Name:       s.Name,
		Timeout:    s.Planner.Timeout.Duration(),
		Resilience: s.Resilience,
	}

	initial, err := toState(s.Initial)
	if err != nil {
		errs = append(errs, fmt.Errorf("initial: %w", err))
	}
	result.Initial = initial

	for _, spec := range s.AllGoals() {
		g, err := buildGoal(spec)
		if err != nil {
			errs = append(errs, fmt.Errorf("goal %q: %w", spec.Name, err))
			continue
		}
		result.Goals = append(result.Goals, g)
	}
	result.Goals = result.Goals.ByPriority()

	for _, spec := range s.Actions {
		a, err := b.buildAction(spec)
		if err != nil {
			errs = append(errs, fmt.Errorf("action %q: %w", spec.Name, err))
			continue
		}
		result.Actions = append(result.Actions, a)
	}

	result.PlannerOptions = plannerOptions(s.Planner)

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", domainconfig.ErrBuildFailed, errors.Join(errs...))
	}
	return result, nil
}

func buildGoal(spec domainconfig.GoalSpec) (goal.Goal, error) {
	desired, err := toState(spec.Requires)
	if err != nil {
		return goal.Goal{}, err
	}
	g := goal.New(spec.Name, desired, spec.Priority)
	if err := g.Validate(); err != nil {
		return goal.Goal{}, err
	}
	return g, nil
}

func (b *Builder) buildAction(spec domainconfig.ActionSpec) (action.Action, error) {
	ab := action.NewBuilder(spec.Name)
	if spec.Cost != nil {
		ab.Cost(*spec.Cost)
	}

	for name, v := range spec.Requires {
		value, err := toVariable(v)
		if err != nil {
			return action.Action{}, fmt.Errorf("requires %s: %w", name, err)
		}
		ab.Requires(name, value)
	}
	for name, v := range spec.Sets {
		value, err := toVariable(v)
		if err != nil {
			return action.Action{}, fmt.Errorf("sets %s: %w", name, err)
		}
		ab.Sets(name, value)
	}
	for name, v := range spec.Adds {
		if err := b.delta(ab, name, v, false); err != nil {
			return action.Action{}, fmt.Errorf("adds %s: %w", name, err)
		}
	}
	for name, v := range spec.Subtracts {
		if err := b.delta(ab, name, v, true); err != nil {
			return action.Action{}, fmt.Errorf("subtracts %s: %w", name, err)
		}
	}

	return ab.Build()
}

// delta adds an Add or Subtract effect. A whole-number delta on a variable
// declared as a decimal elsewhere in the scenario counts in whole units, not
// thousandths. A whole float on an integer variable counts as an integer.
func (b *Builder) delta(ab *action.Builder, name string, v any, subtract bool) error {
	n, f, isInt, err := toNumber(v)
	if err != nil {
		return err
	}

	if !isInt && b.kinds[name] == domainconfig.KindInteger {
		if !domainconfig.IsWhole(f) || math.Abs(f) >= math.MaxInt64 {
			return fmt.Errorf("%w: fractional delta %v on integer variable", world.ErrUnsupportedValue, f)
		}
		n, isInt = int64(f), true
	}

	switch {
	case isInt && b.kinds[name] != domainconfig.KindDecimal:
		if subtract {
			ab.Subtracts(name, n)
		} else {
			ab.Adds(name, n)
		}
	default:
		if subtract {
			ab.SubtractsFloat(name, f)
		} else {
			ab.AddsFloat(name, f)
		}
	}
	return nil
}

func plannerOptions(p domainconfig.PlannerSettings) []planner.Option {
	opts := []planner.Option{planner.WithMaxExpansions(p.MaxExpansions)}
	if p.Heuristic == domainconfig.HeuristicZero {
		opts = append(opts, planner.WithNamedHeuristic(planner.HeuristicZero, planner.ZeroHeuristic))
	}
	return opts
}

// declaredKinds records the kind each variable takes in the initial world,
// goal requirements and action conditions or assignments.
func declaredKinds(s *domainconfig.Scenario) map[string]string {
	kinds := make(map[string]string)
	record := func(values map[string]any) {
		for name, v := range values {
			if _, seen := kinds[name]; seen {
				continue
			}
			if k, ok := domainconfig.ValueKind(v); ok {
				kinds[name] = k
			}
		}
	}

	record(s.Initial)
	for _, g := range s.AllGoals() {
		record(g.Requires)
	}
	for _, a := range s.Actions {
		record(a.Requires)
		record(a.Sets)
	}
	return kinds
}

func toState(values map[string]any) (world.State, error) {
	state := world.NewState()
	var errs []error
	for name, v := range values {
		value, err := toVariable(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		state.Set(name, value)
	}
	return state, errors.Join(errs...)
}

// toVariable converts a decoded document value. JSON numbers without a
// fraction become integers.
func toVariable(v any) (world.Variable, error) {
	if num, ok := v.(json.Number); ok {
		n, f, isInt, err := toNumber(num)
		if err != nil {
			return world.Variable{}, err
		}
		if isInt {
			return world.Int(n), nil
		}
		return world.Decimal(f), nil
	}
	return world.From(v)
}

// toNumber classifies a numeric document value.
func toNumber(v any) (n int64, f float64, isInt bool, err error) {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n, float64(n), true, nil
		}
		f, err := x.Float64()
		if err != nil {
			return 0, 0, false, fmt.Errorf("%w: %s", world.ErrUnsupportedValue, x)
		}
		return 0, f, false, nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, 0, false, fmt.Errorf("%w: non-finite delta", world.ErrUnsupportedValue)
		}
		return 0, x, false, nil
	default:
		value, err := world.From(v)
		if err != nil {
			return 0, 0, false, err
		}
		if i, ok := value.AsInt(); ok {
			return i, float64(i), true, nil
		}
		if d, ok := value.AsFloat(); ok {
			return 0, d, false, nil
		}
		return 0, 0, false, fmt.Errorf("%w: delta must be numeric, got %v", world.ErrUnsupportedValue, v)
	}
}
