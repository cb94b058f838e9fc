package planner

// Option configures the A* planner.
type Option func(*AStar)

// WithMaxExpansions limits the number of states expanded by one search.
// Zero or a negative value means unlimited.
func WithMaxExpansions(n int) Option {
	return func(p *AStar) {
		p.maxExpansions = n
	}
}

// WithHeuristic replaces the default DistanceHeuristic. The planner's
// Variant reports it as "custom".
func WithHeuristic(h Heuristic) Option {
	return WithNamedHeuristic(HeuristicCustom, h)
}

// WithNamedHeuristic replaces the default heuristic and names it in Variant.
// Plans cached under one name are never served to a planner using another.
func WithNamedHeuristic(name string, h Heuristic) Option {
	return func(p *AStar) {
		if h != nil {
			p.heuristic = h
			p.heuristicName = name
		}
	}
}
