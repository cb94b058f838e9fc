package config

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strings"
)

// ValidationError represents a scenario validation error.
type ValidationError struct {
	// Path is the document path to the invalid field.
	Path string
	// Message describes the validation error.
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%d validation errors:\n  - %s", len(e), strings.Join(msgs, "\n  - "))
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validator validates scenarios.
type Validator struct {
	errors ValidationErrors
	kinds  map[string]kindUse
}

// kindUse records where a variable's kind was first seen.
type kindUse struct {
	kind string
	path string
}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate validates the scenario and returns any errors. Beyond field
// checks it reports variables used with conflicting kinds anywhere in the
// document, which would otherwise surface as a planning failure.
func (v *Validator) Validate(s *Scenario) ValidationErrors {
	v.errors = nil
	v.kinds = make(map[string]kindUse)

	v.validateState("initial", s.Initial)
	v.validateGoals(s)
	v.validateActions(s.Actions)
	v.validatePlanner(s.Planner)
	v.validateResilience(s.Resilience)

	return v.errors
}

func (v *Validator) addError(path, message string) {
	v.errors = append(v.errors, ValidationError{Path: path, Message: message})
}

func (v *Validator) validateGoals(s *Scenario) {
	if s.Goal == nil && len(s.Goals) == 0 {
		v.addError("goal", "at least one goal is required")
		return
	}

	seen := make(map[string]bool)
	check := func(path string, g GoalSpec) {
		if g.Name == "" {
			v.addError(path+".name", "goal name is required")
		} else if seen[g.Name] {
			v.addError(path+".name", fmt.Sprintf("duplicate goal: %s", g.Name))
		}
		seen[g.Name] = true
		v.validateState(path+".requires", g.Requires)
	}

	if s.Goal != nil {
		check("goal", *s.Goal)
	}
	for i, g := range s.Goals {
		check(fmt.Sprintf("goals[%d]", i), g)
	}
}

func (v *Validator) validateActions(actions []ActionSpec) {
	seen := make(map[string]bool)
	for i, a := range actions {
		path := fmt.Sprintf("actions[%d]", i)

		if a.Name == "" {
			v.addError(path+".name", "action name is required")
		} else if seen[a.Name] {
			v.addError(path+".name", fmt.Sprintf("duplicate action: %s", a.Name))
		}
		seen[a.Name] = true

		if a.Cost != nil {
			c := *a.Cost
			if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
				v.addError(path+".cost", "cost must be a finite non-negative number")
			}
		}

		v.validateState(path+".requires", a.Requires)
		v.validateState(path+".sets", a.Sets)
		v.validateDeltas(path+".adds", a.Adds)
		v.validateDeltas(path+".subtracts", a.Subtracts)
	}
}

// validateState checks that every value is a supported scalar and that its
// kind agrees with earlier uses of the same variable.
func (v *Validator) validateState(path string, values map[string]any) {
	for _, name := range sortedKeys(values) {
		p := path + "." + name
		if name == "" {
			v.addError(path, "variable name is required")
			continue
		}
		kind, ok := ValueKind(values[name])
		if !ok {
			v.addError(p, fmt.Sprintf("unsupported value %v (%T)", values[name], values[name]))
			continue
		}
		if prev, seen := v.kinds[name]; seen && prev.kind != kind {
			v.addError(p, fmt.Sprintf("%s conflicts with %s at %s", kind, prev.kind, prev.path))
			continue
		}
		if _, seen := v.kinds[name]; !seen {
			v.kinds[name] = kindUse{kind: kind, path: p}
		}
	}
}

// validateDeltas checks that every delta is numeric and that deltas on
// integer variables are whole.
func (v *Validator) validateDeltas(path string, values map[string]any) {
	for _, name := range sortedKeys(values) {
		p := path + "." + name
		kind, ok := ValueKind(values[name])
		if !ok || (kind != KindInteger && kind != KindDecimal) {
			v.addError(p, fmt.Sprintf("delta must be numeric, got %v", values[name]))
			continue
		}
		prev, seen := v.kinds[name]
		if seen && prev.kind == KindInteger && kind == KindDecimal && !IsWhole(values[name]) {
			v.addError(p, fmt.Sprintf("fractional delta %v on integer variable declared at %s", values[name], prev.path))
		}
	}
}

// IsWhole reports whether a numeric scenario value has no fractional part.
func IsWhole(value any) bool {
	var f float64
	switch x := value.(type) {
	case float32:
		f = float64(x)
	case float64:
		f = x
	case json.Number:
		if _, err := x.Int64(); err == nil {
			return true
		}
		parsed, err := x.Float64()
		if err != nil {
			return false
		}
		f = parsed
	default:
		kind, ok := ValueKind(value)
		return ok && kind == KindInteger
	}
	return !math.IsInf(f, 0) && f == math.Trunc(f)
}

func (v *Validator) validatePlanner(p PlannerSettings) {
	if p.MaxExpansions < 0 {
		v.addError("planner.max_expansions", "max_expansions must be non-negative")
	}
	if p.Timeout < 0 {
		v.addError("planner.timeout", "timeout must be non-negative")
	}
	switch p.Heuristic {
	case "", HeuristicDistance, HeuristicZero:
	default:
		v.addError("planner.heuristic", fmt.Sprintf("unknown heuristic: %s", p.Heuristic))
	}
}

func (v *Validator) validateResilience(r ResilienceConfig) {
	if r.Timeout < 0 {
		v.addError("resilience.timeout", "timeout must be non-negative")
	}

	if r.Retry.Enabled {
		if r.Retry.MaxAttempts <= 0 {
			v.addError("resilience.retry.max_attempts", "max_attempts must be positive when enabled")
		}
		if r.Retry.Multiplier != 0 && r.Retry.Multiplier < 1 {
			v.addError("resilience.retry.multiplier", "multiplier must be >= 1")
		}
	}

	if r.CircuitBreaker.Enabled && r.CircuitBreaker.Threshold <= 0 {
		v.addError("resilience.circuit_breaker.threshold", "threshold must be positive when enabled")
	}
}

// Value kinds reported by ValueKind.
const (
	KindBool    = "bool"
	KindInteger = "integer"
	KindDecimal = "decimal"
	KindText    = "text"
)

// ValueKind classifies a decoded document value. Whole json.Number values
// are integers; all other numbers with a fraction or exponent are decimals.
func ValueKind(value any) (string, bool) {
	switch v := value.(type) {
	case bool:
		return KindBool, true
	case int, int8, int16, int32, int64, uint8, uint16, uint32:
		return KindInteger, true
	case uint:
		return KindInteger, uint64(v) <= math.MaxInt64
	case uint64:
		return KindInteger, v <= math.MaxInt64
	case float32:
		return KindDecimal, !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
	case float64:
		return KindDecimal, !math.IsNaN(v) && !math.IsInf(v, 0)
	case json.Number:
		if _, err := v.Int64(); err == nil {
			return KindInteger, true
		}
		f, err := v.Float64()
		return KindDecimal, err == nil && !math.IsInf(f, 0)
	case string:
		return KindText, true
	default:
		return "", false
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
