package world

import (
	"errors"
	"testing"
)

func TestState_Satisfies(t *testing.T) {
	current := NewState().
		Set("has_axe", Bool(true)).
		Set("gold", Int(50)).
		Set("energy", Decimal(0.75)).
		Set("location", Text("forest"))

	tests := []struct {
		name       string
		conditions State
		expected   bool
	}{
		{"empty conditions", NewState(), true},
		{"bool equal", State{"has_axe": Bool(true)}, true},
		{"bool differs", State{"has_axe": Bool(false)}, false},
		{"integer below", State{"gold": Int(30)}, true},
		{"integer equal", State{"gold": Int(50)}, true},
		{"integer above", State{"gold": Int(51)}, false},
		{"decimal below", State{"energy": Decimal(0.5)}, true},
		{"decimal above", State{"energy": Decimal(0.751)}, false},
		{"text equal", State{"location": Text("forest")}, true},
		{"text differs", State{"location": Text("town")}, false},
		{"missing variable", State{"has_wood": Bool(true)}, false},
		{"kind mismatch", State{"gold": Decimal(10)}, false},
		{"all conditions", State{"has_axe": Bool(true), "gold": Int(10), "location": Text("forest")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := current.Satisfies(tt.conditions); got != tt.expected {
				t.Errorf("Satisfies(%v) = %v, want %v", tt.conditions, got, tt.expected)
			}
		})
	}
}

func TestState_Apply(t *testing.T) {
	s := NewState().
		Set("gold", Int(10)).
		Set("energy", Decimal(1.0)).
		Set("at_tree", Bool(false)).
		Set("name", Text("bob"))

	s.Apply(Effects{
		"gold":    Add(5),
		"energy":  SubtractFloat(0.25),
		"at_tree": Set(Bool(true)),
		"name":    Add(1),
		"missing": Subtract(3),
		"created": Set(Text("new")),
	})

	want := State{
		"gold":    Int(15),
		"energy":  Decimal(0.75),
		"at_tree": Bool(true),
		"name":    Text("bob"),
		"created": Text("new"),
	}
	if !s.Equal(want) {
		t.Errorf("Apply() = %v, want %v", s, want)
	}
	if s.Has("missing") {
		t.Error("Subtract on a missing variable must not create it")
	}
}

func TestState_ApplyDecimalRawDelta(t *testing.T) {
	t.Parallel()

	s := State{"energy": Decimal(1.0)}
	s.Apply(Effects{"energy": Add(500)})

	if got, _ := Get[float64](s, "energy"); got != 1.5 {
		t.Errorf("energy = %v, want 1.5", got)
	}
}

func TestState_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	original := State{"gold": Int(1)}
	clone := original.Clone()
	clone.Set("gold", Int(2))

	if v, _ := Get[int64](original, "gold"); v != 1 {
		t.Errorf("original mutated: gold = %d", v)
	}
}

func TestState_NilIsReadableEmptyState(t *testing.T) {
	t.Parallel()

	var s State
	if _, ok := s.Lookup("gold"); ok {
		t.Error("nil state should hold no variables")
	}
	if !s.Satisfies(NewState()) {
		t.Error("nil state should satisfy an empty target")
	}
	if s.Key() != NewState().Key() {
		t.Errorf("Key() = %q, want the empty state key", s.Key())
	}

	writable := s.Clone().Set("gold", Int(1))
	if got, _ := writable.Lookup("gold"); got != Int(1) {
		t.Errorf("gold = %v, want 1", got)
	}
}

func TestState_Merge(t *testing.T) {
	t.Parallel()

	s := State{"a": Int(1), "b": Int(2)}
	s.Merge(State{"b": Int(3), "c": Bool(true)})

	want := State{"a": Int(1), "b": Int(3), "c": Bool(true)}
	if !s.Equal(want) {
		t.Errorf("Merge() = %v, want %v", s, want)
	}
}

func TestState_KeyIsOrderIndependent(t *testing.T) {
	t.Parallel()

	a := NewState()
	a.Set("x", Int(1))
	a.Set("y", Text("z"))
	a.Set("w", Decimal(0.5))

	b := NewState()
	b.Set("w", Decimal(0.5))
	b.Set("y", Text("z"))
	b.Set("x", Int(1))

	if a.Key() != b.Key() {
		t.Errorf("Key() differs: %q vs %q", a.Key(), b.Key())
	}
	if a.Hash() != b.Hash() {
		t.Error("Hash() differs for equal states")
	}
	if !a.Equal(b) {
		t.Error("Equal() = false for equal states")
	}
}

func TestState_KeyDistinguishesKinds(t *testing.T) {
	tests := []struct {
		name string
		a, b State
	}{
		{"int vs decimal", State{"v": Int(1000)}, State{"v": Decimal(1)}},
		{"bool vs int", State{"v": Bool(true)}, State{"v": Int(1)}},
		{"text vs int", State{"v": Text("1")}, State{"v": Int(1)}},
		{"name injection", State{"a": Text("x;\"b\"=i:1")}, State{"a": Text("x"), "b": Int(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.a.Key() == tt.b.Key() {
				t.Errorf("Key() collision: %q", tt.a.Key())
			}
		})
	}
}

func TestState_Distance(t *testing.T) {
	s := State{"gold": Int(30), "has_axe": Bool(true)}

	tests := []struct {
		name   string
		target State
		want   uint64
	}{
		{"satisfied", State{"has_axe": Bool(true)}, 0},
		{"numeric gap", State{"gold": Int(100)}, 70},
		{"missing counts one", State{"has_wood": Bool(true)}, 1},
		{"sum", State{"gold": Int(100), "has_axe": Bool(false), "has_wood": Bool(true)}, 72},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Distance(tt.target)
			if err != nil {
				t.Fatalf("Distance() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Distance() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestState_DistanceMismatch(t *testing.T) {
	t.Parallel()

	_, err := State{"value": Int(1)}.Distance(State{"value": Text("done")})

	var mismatch *MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Distance() error = %v, want *MismatchError", err)
	}
	if mismatch.Name != "value" {
		t.Errorf("Name = %q, want %q", mismatch.Name, "value")
	}
}

func TestState_String(t *testing.T) {
	t.Parallel()

	s := State{"b": Int(2), "a": Bool(true)}
	if got, want := s.String(), "{a: true, b: 2}"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
