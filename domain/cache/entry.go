package cache

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/felixgeelhaar/goap-go/domain/action"
	"github.com/felixgeelhaar/goap-go/domain/goal"
	"github.com/felixgeelhaar/goap-go/domain/plan"
	"github.com/felixgeelhaar/goap-go/domain/world"
)

// KeyPrefix prefixes every plan cache key.
const KeyPrefix = "plan:"

// PlanKey derives the cache key of a planning request. It covers the
// initial state, the goal requirements, every action definition in order
// and an optional variant string for planner settings.
func PlanKey(initial world.State, g goal.Goal, actions []action.Action, variant string) string {
	var b strings.Builder
	b.WriteString(initial.Key())
	b.WriteByte('#')
	b.WriteString(g.Desired.Key())
	b.WriteByte('#')
	for _, a := range actions {
		b.WriteString(a.Fingerprint())
		b.WriteByte('\n')
	}
	b.WriteByte('#')
	b.WriteString(variant)

	return KeyPrefix + strconv.FormatUint(xxhash.Sum64String(b.String()), 16)
}

// Entry is the cached form of a plan. Steps are indices into the action
// list the plan was computed for.
type Entry struct {
	Steps     []int   `json:"steps"`
	Cost      float64 `json:"cost"`
	Expanded  int     `json:"expanded"`
	Generated int     `json:"generated"`
}

// NewEntry encodes p against the action list it was computed from.
func NewEntry(p plan.Plan, actions []action.Action) (Entry, error) {
	index := make(map[string]int, len(actions))
	for i, a := range actions {
		fp := a.Fingerprint()
		if _, ok := index[fp]; !ok {
			index[fp] = i
		}
	}

	steps := make([]int, len(p.Actions))
	for i, a := range p.Actions {
		idx, ok := index[a.Fingerprint()]
		if !ok {
			return Entry{}, fmt.Errorf("%w: step %d (%s) not in action list", ErrCorruptEntry, i+1, a.Name)
		}
		steps[i] = idx
	}

	return Entry{
		Steps:     steps,
		Cost:      p.Cost,
		Expanded:  p.Stats.Expanded,
		Generated: p.Stats.Generated,
	}, nil
}

// Plan rebuilds the plan from actions.
func (e Entry) Plan(actions []action.Action) (plan.Plan, error) {
	steps := make([]action.Action, len(e.Steps))
	for i, idx := range e.Steps {
		if idx < 0 || idx >= len(actions) {
			return plan.Plan{}, fmt.Errorf("%w: step %d index %d out of range", ErrCorruptEntry, i+1, idx)
		}
		steps[i] = actions[idx]
	}
	return plan.Plan{
		Actions: steps,
		Cost:    e.Cost,
		Stats:   plan.Stats{Expanded: e.Expanded, Generated: e.Generated},
	}, nil
}

// Marshal encodes the entry as JSON.
func (e Entry) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// UnmarshalEntry decodes an entry produced by Marshal.
func UnmarshalEntry(data []byte) (Entry, error) {
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, fmt.Errorf("%w: %w", ErrCorruptEntry, err)
	}
	return e, nil
}
