// Package planner provides the A* planner for goal-oriented action planning.
package planner

import (
	"container/heap"
	"context"
	"fmt"

	"github.com/felixgeelhaar/goap-go/domain/action"
	"github.com/felixgeelhaar/goap-go/domain/goal"
	"github.com/felixgeelhaar/goap-go/domain/plan"
	"github.com/felixgeelhaar/goap-go/domain/world"
)

// AStar searches the space of world states for the cheapest action sequence
// that satisfies a goal. States are nodes and applicable actions are edges.
//
// AStar holds only configuration. Every call to Plan owns its search state,
// so one planner can serve concurrent calls.
type AStar struct {
	maxExpansions int
	heuristic     Heuristic
	heuristicName string
}

// Ensure AStar implements plan.Planner.
var _ plan.Planner = (*AStar)(nil)

// NewAStar creates an A* planner.
func NewAStar(opts ...Option) *AStar {
	p := &AStar{heuristic: DistanceHeuristic, heuristicName: HeuristicDistance}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Variant describes the settings that change which plan a search returns.
// Two planners with the same variant return the same plan for the same
// inputs, so it separates cache entries.
func (p *AStar) Variant() string {
	limit := p.maxExpansions
	if limit < 0 {
		limit = 0
	}
	return fmt.Sprintf("astar:%s:%d", p.heuristicName, limit)
}

// node is the best known way to reach one state.
type node struct {
	state  world.State
	g      float64
	parent string
	action int // index into the action list, -1 for the initial state
}

// Plan returns the cheapest plan from initial to g.
//
// The goal and every action must be named and actions must have a finite,
// non-negative cost; otherwise Plan fails with plan.ErrInvalidGoal or
// plan.ErrInvalidAction before searching.
//
// The search is deterministic for a fixed action order: successors are
// generated in list order and f ties pop in insertion order.
func (p *AStar) Plan(ctx context.Context, initial world.State, g goal.Goal, actions []action.Action) (plan.Plan, error) {
	if err := g.Validate(); err != nil {
		return plan.Plan{}, fmt.Errorf("%w: %w", plan.ErrInvalidGoal, err)
	}
	for i, a := range actions {
		if err := a.Validate(); err != nil {
			return plan.Plan{}, fmt.Errorf("%w: action %d (%q): %w", plan.ErrInvalidAction, i, a.Name, err)
		}
	}

	start := initial.Clone()
	startKey := start.Key()

	h, err := p.heuristic(start, g)
	if err != nil {
		return plan.Plan{}, err
	}

	nodes := map[string]*node{
		startKey: {state: start, action: -1},
	}
	open := &openSet{}
	heap.Push(open, &entry{key: startKey, f: h})

	var (
		stats plan.Stats
		seq   uint64
	)

	for open.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return plan.Plan{}, fmt.Errorf("planning interrupted after %d expansions: %w", stats.Expanded, err)
		}

		e := heap.Pop(open).(*entry)
		current := nodes[e.key]
		if e.g > current.g {
			// Superseded by a cheaper path pushed later.
			continue
		}

		if g.IsSatisfied(current.state) {
			return reconstruct(nodes, e.key, actions, stats), nil
		}

		if p.maxExpansions > 0 && stats.Expanded >= p.maxExpansions {
			return plan.Plan{}, fmt.Errorf("%w: %d expansions", plan.ErrSearchExhausted, stats.Expanded)
		}
		stats.Expanded++

		for i, a := range actions {
			if !a.CanExecute(current.state) {
				continue
			}

			next := a.ApplyEffect(current.state)
			key := next.Key()
			tentative := current.g + a.Cost
			if known, ok := nodes[key]; ok && tentative >= known.g {
				continue
			}

			h, err := p.heuristic(next, g)
			if err != nil {
				return plan.Plan{}, err
			}

			nodes[key] = &node{state: next, g: tentative, parent: e.key, action: i}
			seq++
			heap.Push(open, &entry{key: key, g: tentative, f: tentative + h, seq: seq})
			stats.Generated++
		}
	}

	return plan.Plan{}, fmt.Errorf("%w: goal %q unreachable after %d expansions", plan.ErrNoPlanFound, g.Name, stats.Expanded)
}

// reconstruct walks predecessor links from the goal node back to the
// initial state. A broken chain is an internal invariant violation.
func reconstruct(nodes map[string]*node, key string, actions []action.Action, stats plan.Stats) plan.Plan {
	goalNode := nodes[key]

	var steps []action.Action
	for n := goalNode; n.action >= 0; {
		if len(steps) > len(nodes) {
			panic("planner: predecessor chain contains a cycle")
		}
		steps = append(steps, actions[n.action])

		parent, ok := nodes[n.parent]
		if !ok {
			panic(fmt.Sprintf("planner: missing predecessor %q", n.parent))
		}
		n = parent
	}

	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}

	// Summed in path order, this equals goalNode.g unless a predecessor
	// was improved after the goal node was pushed.
	var cost float64
	for _, a := range steps {
		cost += a.Cost
	}

	return plan.Plan{
		Actions: steps,
		Cost:    cost,
		Stats:   stats,
	}
}
