// Package behavior compiles plans into behavior trees.
//
// A compiled tree has the shape
//
//	Selector(GoalSatisfied, Sequence(Step 1, ..., Step n, GoalSatisfied))
//
// so a goal that already holds short-circuits the plan, and the trailing
// condition confirms the goal once every step has run.
package behavior

import (
	"context"
	"fmt"

	bt "github.com/joeycumines/go-behaviortree"

	"github.com/felixgeelhaar/goap-go/domain/action"
	"github.com/felixgeelhaar/goap-go/domain/execution"
	"github.com/felixgeelhaar/goap-go/domain/goal"
	"github.com/felixgeelhaar/goap-go/domain/plan"
	"github.com/felixgeelhaar/goap-go/domain/world"
)

// Blackboard is the state a tree reads and the step runner it drives.
type Blackboard interface {
	// State returns the current world.
	State() world.State

	// RunStep performs the plan step at index. It is only called once the
	// step's preconditions hold against State.
	RunStep(ctx context.Context, index int, a action.Action) error
}

// Tree is a compiled plan.
type Tree struct {
	root  bt.Node
	goal  goal.Goal
	steps int
}

// Compile builds the tree for p toward g. Leaves read and drive bb and
// abort with ctx.Err once ctx is done.
func Compile(ctx context.Context, p plan.Plan, g goal.Goal, bb Blackboard) *Tree {
	leaves := make([]bt.Node, 0, p.Len()+1)
	for i, a := range p.Actions {
		leaves = append(leaves, stepLeaf(ctx, i, a, bb))
	}
	leaves = append(leaves, goalCheck(g, bb, true))

	return &Tree{
		root:  bt.New(bt.Selector, goalCheck(g, bb, false), bt.New(bt.Sequence, leaves...)),
		goal:  g,
		steps: p.Len(),
	}
}

// Run ticks the tree once. Steps never report Running, so a single tick
// either completes the plan or stops at the first failing step.
func (t *Tree) Run() error {
	status, err := t.root.Tick()
	if err != nil {
		return err
	}
	if status != bt.Success {
		return fmt.Errorf("%w: %s finished with %s", execution.ErrGoalNotReached, t.goal.Name, status)
	}
	return nil
}

// Steps returns the number of action leaves.
func (t *Tree) Steps() int {
	return t.steps
}

// Root exposes the compiled node for composition into larger trees.
func (t *Tree) Root() bt.Node {
	return t.root
}

func stepLeaf(ctx context.Context, index int, a action.Action, bb Blackboard) bt.Node {
	return bt.New(func([]bt.Node) (bt.Status, error) {
		if err := ctx.Err(); err != nil {
			return bt.Failure, err
		}
		state := bb.State()
		if !a.CanExecute(state) {
			return bt.Failure, fmt.Errorf("%w: step %d (%s) in %s", execution.ErrPreconditionFailed, index+1, a.Name, state)
		}
		if err := bb.RunStep(ctx, index, a); err != nil {
			return bt.Failure, err
		}
		return bt.Success, nil
	})
}

// goalCheck succeeds when g holds. With required set an unmet goal is an
// error rather than a plain failure.
func goalCheck(g goal.Goal, bb Blackboard, required bool) bt.Node {
	return bt.New(func([]bt.Node) (bt.Status, error) {
		if g.IsSatisfied(bb.State()) {
			return bt.Success, nil
		}
		if required {
			return bt.Failure, fmt.Errorf("%w: %s", execution.ErrGoalNotReached, g.Name)
		}
		return bt.Failure, nil
	})
}
