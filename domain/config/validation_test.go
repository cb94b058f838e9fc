package config

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"
)

func cost(c float64) *float64 { return &c }

func validScenario() *Scenario {
	return &Scenario{
		Name:    "get-wood",
		Initial: map[string]any{"has_axe": true, "wood": 0},
		Goal:    &GoalSpec{Name: "get_wood", Requires: map[string]any{"wood": 2}},
		Actions: []ActionSpec{
			{Name: "chop", Cost: cost(2), Requires: map[string]any{"has_axe": true}, Adds: map[string]any{"wood": 1}},
			{Name: "buy_axe", Sets: map[string]any{"has_axe": true}},
		},
		Planner: PlannerSettings{MaxExpansions: 100, Timeout: Duration(time.Second)},
	}
}

func TestValidator_Valid(t *testing.T) {
	t.Parallel()

	if errs := NewValidator().Validate(validScenario()); errs.HasErrors() {
		t.Errorf("Validate() = %v, want no errors", errs)
	}
}

func TestValidator_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mutate   func(*Scenario)
		wantPath string
	}{
		{"missing goal", func(s *Scenario) { s.Goal = nil }, "goal"},
		{"goal without name", func(s *Scenario) { s.Goal.Name = "" }, "goal.name"},
		{"duplicate goal", func(s *Scenario) { s.Goals = []GoalSpec{{Name: "get_wood"}} }, "goals[0].name"},
		{"action without name", func(s *Scenario) { s.Actions[1].Name = "" }, "actions[1].name"},
		{"duplicate action", func(s *Scenario) { s.Actions[1].Name = "chop" }, "actions[1].name"},
		{"negative cost", func(s *Scenario) { s.Actions[0].Cost = cost(-1) }, "actions[0].cost"},
		{"NaN cost", func(s *Scenario) { s.Actions[0].Cost = cost(math.NaN()) }, "actions[0].cost"},
		{"unsupported value", func(s *Scenario) { s.Initial["list"] = []any{1} }, "initial.list"},
		{"non-numeric delta", func(s *Scenario) { s.Actions[0].Adds["wood"] = "one" }, "actions[0].adds.wood"},
		{"fractional delta on integer", func(s *Scenario) { s.Actions[0].Adds["wood"] = 1.5 }, "actions[0].adds.wood"},
		{"fractional json delta on integer", func(s *Scenario) {
			s.Actions[0].Subtracts = map[string]any{"wood": json.Number("0.25")}
		}, "actions[0].subtracts.wood"},
		{"kind conflict", func(s *Scenario) { s.Goal.Requires["has_axe"] = 1 }, "goal.requires.has_axe"},
		{"integer vs decimal", func(s *Scenario) { s.Actions[1].Sets["wood"] = 1.5 }, "actions[1].sets.wood"},
		{"negative max expansions", func(s *Scenario) { s.Planner.MaxExpansions = -1 }, "planner.max_expansions"},
		{"negative timeout", func(s *Scenario) { s.Planner.Timeout = Duration(-time.Second) }, "planner.timeout"},
		{"unknown heuristic", func(s *Scenario) { s.Planner.Heuristic = "manhattan" }, "planner.heuristic"},
		{"retry attempts", func(s *Scenario) { s.Resilience.Retry = RetryConfig{Enabled: true} }, "resilience.retry.max_attempts"},
		{"retry multiplier", func(s *Scenario) {
			s.Resilience.Retry = RetryConfig{Enabled: true, MaxAttempts: 2, Multiplier: 0.5}
		}, "resilience.retry.multiplier"},
		{"breaker threshold", func(s *Scenario) {
			s.Resilience.CircuitBreaker = CircuitBreakerConfig{Enabled: true}
		}, "resilience.circuit_breaker.threshold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := validScenario()
			tt.mutate(s)

			errs := NewValidator().Validate(s)
			if !errs.HasErrors() {
				t.Fatal("Validate() returned no errors")
			}
			found := false
			for _, e := range errs {
				if e.Path == tt.wantPath {
					found = true
				}
			}
			if !found {
				t.Errorf("Validate() = %v, want an error at %s", errs, tt.wantPath)
			}
		})
	}
}

func TestValidator_Reusable(t *testing.T) {
	t.Parallel()

	v := NewValidator()
	bad := validScenario()
	bad.Goal = nil
	if !v.Validate(bad).HasErrors() {
		t.Fatal("first Validate() should fail")
	}
	if errs := v.Validate(validScenario()); errs.HasErrors() {
		t.Errorf("second Validate() = %v, state leaked between runs", errs)
	}
}

func TestValidator_WholeFloatDeltaOnInteger(t *testing.T) {
	t.Parallel()

	s := validScenario()
	s.Actions[0].Adds["wood"] = 2.0
	s.Actions[0].Subtracts = map[string]any{"wood": json.Number("1.0")}

	if errs := NewValidator().Validate(s); errs.HasErrors() {
		t.Errorf("Validate() = %v, want whole float deltas accepted", errs)
	}
}

func TestIsWhole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value any
		want  bool
	}{
		{3, true},
		{2.0, true},
		{-4.0, true},
		{1.5, false},
		{float32(0.5), false},
		{json.Number("7"), true},
		{json.Number("7.0"), true},
		{json.Number("7.25"), false},
		{math.Inf(1), false},
		{"3", false},
	}

	for _, tt := range tests {
		if got := IsWhole(tt.value); got != tt.want {
			t.Errorf("IsWhole(%#v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestValueKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value  any
		want   string
		wantOK bool
	}{
		{true, KindBool, true},
		{3, KindInteger, true},
		{int64(-3), KindInteger, true},
		{uint64(math.MaxUint64), KindInteger, false},
		{2.5, KindDecimal, true},
		{math.Inf(1), KindDecimal, false},
		{json.Number("7"), KindInteger, true},
		{json.Number("7.0"), KindDecimal, true},
		{"idle", KindText, true},
		{nil, "", false},
		{map[string]any{}, "", false},
	}

	for _, tt := range tests {
		got, ok := ValueKind(tt.value)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ValueKind(%#v) = %q, %v; want %q, %v", tt.value, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestValidationErrors_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		errs ValidationErrors
		want string
	}{
		{"empty", nil, "no validation errors"},
		{"single", ValidationErrors{{Path: "goal", Message: "required"}}, "goal: required"},
		{"no path", ValidationErrors{{Message: "bad"}}, "bad"},
	}
	for _, tt := range tests {
		if got := tt.errs.Error(); got != tt.want {
			t.Errorf("%s: Error() = %q, want %q", tt.name, got, tt.want)
		}
	}

	multi := ValidationErrors{{Path: "a", Message: "x"}, {Path: "b", Message: "y"}}
	if got := multi.Error(); !strings.HasPrefix(got, "2 validation errors:") || !strings.Contains(got, "b: y") {
		t.Errorf("Error() = %q", got)
	}
}
