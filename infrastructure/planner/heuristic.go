package planner

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/goap-go/domain/goal"
	"github.com/felixgeelhaar/goap-go/domain/plan"
	"github.com/felixgeelhaar/goap-go/domain/world"
)

// Heuristic names reported by AStar.Variant.
const (
	HeuristicDistance = "distance"
	HeuristicZero     = "zero"
	HeuristicCustom   = "custom"
)

// Heuristic estimates the remaining cost from state to the goal.
type Heuristic func(state world.State, g goal.Goal) (float64, error)

// DistanceHeuristic sums the per-variable distance to every goal
// requirement, counting 1 for each variable missing from state. Numeric
// distances are measured on the underlying integers, so decimals count in
// thousandths. A kind mismatch returns an *plan.IncompatibleStateError.
//
// The estimate is not admissible in general: one action may close several
// requirements at once, and numeric gaps are usually larger than the cost of
// the actions that close them.
func DistanceHeuristic(state world.State, g goal.Goal) (float64, error) {
	d, err := g.Distance(state)
	if err != nil {
		var mismatch *world.MismatchError
		if errors.As(err, &mismatch) {
			return 0, &plan.IncompatibleStateError{
				Variable: mismatch.Name,
				State:    mismatch.Have,
				Goal:     mismatch.Want,
			}
		}
		return 0, fmt.Errorf("%w: %w", plan.ErrIncompatibleStateTypes, err)
	}
	return float64(d), nil
}

// ZeroHeuristic always returns 0, turning the search into uniform-cost
// search. Kind mismatches are still reported.
func ZeroHeuristic(state world.State, g goal.Goal) (float64, error) {
	if _, err := DistanceHeuristic(state, g); err != nil {
		return 0, err
	}
	return 0, nil
}
