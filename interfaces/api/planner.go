package api

import (
	"github.com/felixgeelhaar/goap-go/infrastructure/planner"
)

// Re-export planner types.
type (
	// AStar is the A* planner.
	AStar = planner.AStar
	// PlannerOption configures the A* planner.
	PlannerOption = planner.Option
	// Heuristic estimates the remaining cost to a goal.
	Heuristic = planner.Heuristic
	// MockPlanner returns scripted results for testing.
	MockPlanner = planner.MockPlanner
	// MockResult is one scripted planner response.
	MockResult = planner.MockResult
)

// NewPlanner creates an A* planner.
func NewPlanner(opts ...PlannerOption) *AStar {
	return planner.NewAStar(opts...)
}

// NewMockPlanner creates a mock planner with predefined results.
func NewMockPlanner(results ...MockResult) *MockPlanner {
	return planner.NewMockPlanner(results...)
}

// WithMaxExpansions bounds the number of expanded states.
func WithMaxExpansions(n int) PlannerOption {
	return planner.WithMaxExpansions(n)
}

// WithHeuristic replaces the distance heuristic.
func WithHeuristic(h Heuristic) PlannerOption {
	return planner.WithHeuristic(h)
}

// WithNamedHeuristic replaces the distance heuristic and names it in the
// planner's cache variant.
func WithNamedHeuristic(name string, h Heuristic) PlannerOption {
	return planner.WithNamedHeuristic(name, h)
}

// DistanceHeuristic is the default heuristic.
var DistanceHeuristic Heuristic = planner.DistanceHeuristic

// ZeroHeuristic turns A* into uniform-cost search.
var ZeroHeuristic Heuristic = planner.ZeroHeuristic
