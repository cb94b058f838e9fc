package application

import "errors"

// Application errors.
var (
	// ErrPlannerRequired indicates a service was built without a planner.
	ErrPlannerRequired = errors.New("planner is required")

	// ErrNoGoals indicates goal selection was asked to choose from nothing.
	ErrNoGoals = errors.New("no goals to plan for")

	// ErrNoReachableGoal indicates no candidate goal produced a plan.
	ErrNoReachableGoal = errors.New("no reachable goal")
)
