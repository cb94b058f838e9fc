// Package config provides the scenario document model: a starting world, one
// or more goals, an action library and planner settings.
package config

import (
	"time"
)

// Scenario is a complete planning problem as read from a YAML or JSON file.
type Scenario struct {
	// Name is a human-readable name for this scenario.
	Name string `json:"name" yaml:"name"`
	// Description describes the scenario.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Initial is the starting world. Values are bool, integer, float or string.
	Initial map[string]any `json:"initial" yaml:"initial"`
	// Goal is the primary goal.
	Goal *GoalSpec `json:"goal,omitempty" yaml:"goal,omitempty"`
	// Goals are alternative goals, chosen by priority.
	Goals []GoalSpec `json:"goals,omitempty" yaml:"goals,omitempty"`
	// Actions is the action library.
	Actions []ActionSpec `json:"actions" yaml:"actions"`

	// Planner contains search settings.
	Planner PlannerSettings `json:"planner,omitempty" yaml:"planner,omitempty"`
	// Resilience configures action handlers during execution.
	Resilience ResilienceConfig `json:"resilience,omitempty" yaml:"resilience,omitempty"`
}

// AllGoals returns the primary goal followed by the alternatives.
func (s *Scenario) AllGoals() []GoalSpec {
	goals := make([]GoalSpec, 0, len(s.Goals)+1)
	if s.Goal != nil {
		goals = append(goals, *s.Goal)
	}
	return append(goals, s.Goals...)
}

// GoalSpec describes a goal.
type GoalSpec struct {
	// Name identifies the goal.
	Name string `json:"name" yaml:"name"`
	// Priority orders alternative goals; higher wins.
	Priority int `json:"priority,omitempty" yaml:"priority,omitempty"`
	// Requires is the desired partial world.
	Requires map[string]any `json:"requires" yaml:"requires"`
}

// ActionSpec describes an action.
type ActionSpec struct {
	// Name identifies the action.
	Name string `json:"name" yaml:"name"`
	// Cost is the non-negative step cost. Nil means the default of 1.
	Cost *float64 `json:"cost,omitempty" yaml:"cost,omitempty"`
	// Requires lists preconditions.
	Requires map[string]any `json:"requires,omitempty" yaml:"requires,omitempty"`
	// Sets assigns variables.
	Sets map[string]any `json:"sets,omitempty" yaml:"sets,omitempty"`
	// Adds increments numeric variables. Integers add to integers; floats
	// add a decimal delta.
	Adds map[string]any `json:"adds,omitempty" yaml:"adds,omitempty"`
	// Subtracts decrements numeric variables.
	Subtracts map[string]any `json:"subtracts,omitempty" yaml:"subtracts,omitempty"`
}

// PlannerSettings configures the search.
type PlannerSettings struct {
	// MaxExpansions bounds the number of expanded states (0 = unlimited).
	MaxExpansions int `json:"max_expansions,omitempty" yaml:"max_expansions,omitempty"`
	// Timeout bounds one planning call (0 = none).
	Timeout Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	// Heuristic selects the estimate: "distance" (default) or "zero".
	Heuristic string `json:"heuristic,omitempty" yaml:"heuristic,omitempty"`
}

// Heuristic names.
const (
	HeuristicDistance = "distance"
	HeuristicZero     = "zero"
)

// ResilienceConfig contains resilience settings for action handlers.
type ResilienceConfig struct {
	// Timeout bounds a single handler call.
	Timeout Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	// Retry configures retry behavior.
	Retry RetryConfig `json:"retry,omitempty" yaml:"retry,omitempty"`
	// CircuitBreaker configures circuit breaker behavior.
	CircuitBreaker CircuitBreakerConfig `json:"circuit_breaker,omitempty" yaml:"circuit_breaker,omitempty"`
}

// RetryConfig configures retry behavior.
type RetryConfig struct {
	// Enabled enables retry.
	Enabled bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	// MaxAttempts is the maximum retry attempts.
	MaxAttempts int `json:"max_attempts,omitempty" yaml:"max_attempts,omitempty"`
	// InitialDelay is the first retry delay.
	InitialDelay Duration `json:"initial_delay,omitempty" yaml:"initial_delay,omitempty"`
	// Multiplier is the backoff multiplier.
	Multiplier float64 `json:"multiplier,omitempty" yaml:"multiplier,omitempty"`
}

// CircuitBreakerConfig configures circuit breaker behavior.
type CircuitBreakerConfig struct {
	// Enabled enables circuit breaker.
	Enabled bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	// Threshold is consecutive failures before opening.
	Threshold int `json:"threshold,omitempty" yaml:"threshold,omitempty"`
	// Timeout is how long the circuit stays open.
	Timeout Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// Duration is a time.Duration that supports JSON/YAML string representation.
type Duration time.Duration

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}

	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
