package goal

import (
	"cmp"
	"slices"

	"github.com/felixgeelhaar/goap-go/domain/world"
)

// Set is a collection of goals competing for selection.
type Set []Goal

// ByPriority returns the goals ordered from highest to lowest priority.
// Goals with equal priority keep their relative order.
func (s Set) ByPriority() Set {
	out := slices.Clone(s)
	slices.SortStableFunc(out, func(a, b Goal) int {
		return cmp.Compare(b.Priority, a.Priority)
	})
	return out
}

// Highest returns the goal with the highest priority. The first goal wins
// ties.
func (s Set) Highest() (Goal, bool) {
	if len(s) == 0 {
		return Goal{}, false
	}
	best := s[0]
	for _, g := range s[1:] {
		if g.Priority > best.Priority {
			best = g
		}
	}
	return best, true
}

// Unsatisfied returns the goals not yet satisfied by state, in order.
func (s Set) Unsatisfied(state world.State) Set {
	var out Set
	for _, g := range s {
		if !g.IsSatisfied(state) {
			out = append(out, g)
		}
	}
	return out
}
