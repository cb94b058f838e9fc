package planner

import (
	"context"
	"sync"

	"github.com/felixgeelhaar/goap-go/domain/action"
	"github.com/felixgeelhaar/goap-go/domain/goal"
	"github.com/felixgeelhaar/goap-go/domain/plan"
	"github.com/felixgeelhaar/goap-go/domain/world"
)

// MockResult is one scripted planner response.
type MockResult struct {
	Plan plan.Plan
	Err  error
}

// MockPlanner returns a predefined sequence of results for testing.
// Once the sequence is exhausted it falls back to a real A* search.
type MockPlanner struct {
	results  []MockResult
	index    int
	calls    int
	fallback *AStar
	mu       sync.Mutex
}

// Ensure MockPlanner implements plan.Planner.
var _ plan.Planner = (*MockPlanner)(nil)

// NewMockPlanner creates a mock planner with the given results.
func NewMockPlanner(results ...MockResult) *MockPlanner {
	return &MockPlanner{
		results:  results,
		fallback: NewAStar(),
	}
}

// Plan returns the next scripted result.
func (p *MockPlanner) Plan(ctx context.Context, initial world.State, g goal.Goal, actions []action.Action) (plan.Plan, error) {
	p.mu.Lock()
	p.calls++
	if p.index >= len(p.results) {
		p.mu.Unlock()
		return p.fallback.Plan(ctx, initial, g, actions)
	}
	result := p.results[p.index]
	p.index++
	p.mu.Unlock()

	return result.Plan, result.Err
}

// Calls returns how many times Plan was invoked.
func (p *MockPlanner) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// Reset resets the planner to the beginning.
func (p *MockPlanner) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.index = 0
	p.calls = 0
}

// Remaining returns the number of remaining scripted results.
func (p *MockPlanner) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.results) - p.index
}

// AddResult appends a result to the sequence.
func (p *MockPlanner) AddResult(r MockResult) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.results = append(p.results, r)
}
