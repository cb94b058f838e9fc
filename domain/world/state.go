package world

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// State is a set of named variables describing the world.
//
// States are values: the planner never mutates a state it has already seen,
// it derives new ones with Clone and Apply. Equality and hashing do not depend
// on insertion order.
//
// A nil State is a valid empty state for reads, but Set, Apply and Merge write
// to the map and panic on nil. Create writable states with NewState, a map
// literal, a Builder or Clone.
type State map[string]Variable

// NewState creates an empty state.
func NewState() State {
	return make(State)
}

// Set inserts or overwrites a variable. s must not be nil.
func (s State) Set(name string, v Variable) State {
	s[name] = v
	return s
}

// Lookup returns the variable stored under name.
func (s State) Lookup(name string) (Variable, bool) {
	v, ok := s[name]
	return v, ok
}

// Has returns true if the state defines name.
func (s State) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Delete removes a variable.
func (s State) Delete(name string) {
	delete(s, name)
}

// Len returns the number of variables.
func (s State) Len() int {
	return len(s)
}

// Names returns the variable names in sorted order.
func (s State) Names() []string {
	return slices.Sorted(maps.Keys(s))
}

// Clone returns an independent copy of the state.
func (s State) Clone() State {
	out := make(State, len(s))
	maps.Copy(out, s)
	return out
}

// Equal reports whether both states hold exactly the same variables.
func (s State) Equal(other State) bool {
	return maps.Equal(s, other)
}

// Satisfies reports whether the state meets every condition.
// Integer and decimal conditions are thresholds (current >= required);
// bool and text conditions require equality. A missing variable or a kind
// mismatch is unsatisfied.
func (s State) Satisfies(conditions State) bool {
	for name, req := range conditions {
		cur, ok := s[name]
		if !ok || !cur.meets(req) {
			return false
		}
	}
	return true
}

// Apply mutates the state with the given effects.
func (s State) Apply(effects Effects) {
	for name, eff := range effects {
		if next, ok := eff.apply(s[name], s.Has(name)); ok {
			s[name] = next
		}
	}
}

// Merge copies every variable of other into s, overwriting existing names.
func (s State) Merge(other State) State {
	maps.Copy(s, other)
	return s
}

// Distance sums the per-variable distance from s to every variable in
// target. A variable missing from s counts as 1. A kind mismatch returns a
// *MismatchError naming the variable.
func (s State) Distance(target State) (uint64, error) {
	var total uint64
	for _, name := range target.Names() {
		cur, ok := s[name]
		if !ok {
			total++
			continue
		}
		d, err := cur.Distance(target[name])
		if err != nil {
			return 0, &MismatchError{Name: name, Have: cur.Kind(), Want: target[name].Kind()}
		}
		total += d
	}
	return total, nil
}

// Key returns the canonical encoding of the state. Two states are Equal
// exactly when their keys are equal.
func (s State) Key() string {
	var b strings.Builder
	for _, name := range s.Names() {
		b.WriteString(strconv.Quote(name))
		b.WriteByte('=')
		b.WriteString(s[name].encode())
		b.WriteByte(';')
	}
	return b.String()
}

// Hash returns a 64-bit hash of the canonical encoding.
func (s State) Hash() uint64 {
	return xxhash.Sum64String(s.Key())
}

// String renders the state with sorted names.
func (s State) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, name := range s.Names() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(s[name].String())
	}
	b.WriteByte('}')
	return b.String()
}
