package planner

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/felixgeelhaar/goap-go/domain/action"
	"github.com/felixgeelhaar/goap-go/domain/goal"
	"github.com/felixgeelhaar/goap-go/domain/plan"
	"github.com/felixgeelhaar/goap-go/domain/world"
)

func woodActions() []action.Action {
	return []action.Action{
		action.NewBuilder("move_to_tree").Cost(1).Sets("at_tree", true).MustBuild(),
		action.NewBuilder("chop_tree").Cost(2).
			Requires("has_axe", true).
			Requires("at_tree", true).
			Sets("has_wood", true).
			MustBuild(),
	}
}

func TestAStar_GetWood(t *testing.T) {
	t.Parallel()

	initial := world.NewBuilder().Bool("has_axe", true).Bool("has_wood", false).MustBuild()
	g := goal.NewBuilder("get_wood").Requires("has_wood", true).MustBuild()

	p, err := NewAStar().Plan(context.Background(), initial, g, woodActions())
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	if got, want := p.Names(), []string{"move_to_tree", "chop_tree"}; !slices.Equal(got, want) {
		t.Errorf("Plan() = %v, want %v", got, want)
	}
	if p.Cost != 3.0 {
		t.Errorf("Cost = %v, want 3.0", p.Cost)
	}
	if p.Stats.Expanded != 2 || p.Stats.Generated != 2 {
		t.Errorf("Stats = %+v, want 2 expanded and 2 generated", p.Stats)
	}
}

func TestAStar_NumericThreshold(t *testing.T) {
	t.Parallel()

	initial := world.State{"gold": world.Int(0)}
	g := goal.NewBuilder("rich").Requires("gold", 100).MustBuild()
	actions := []action.Action{
		action.NewBuilder("small_job").Cost(1).Adds("gold", 30).MustBuild(),
		action.NewBuilder("big_job").Cost(3).Adds("gold", 80).MustBuild(),
	}

	p, err := NewAStar().Plan(context.Background(), initial, g, actions)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	if p.Cost != 4 {
		t.Errorf("Cost = %v, want 4", p.Cost)
	}
	if got, want := p.Names(), []string{"big_job", "small_job"}; !slices.Equal(got, want) {
		t.Errorf("Plan() = %v, want %v", got, want)
	}

	states, err := p.Simulate(initial)
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	if gold, _ := world.Get[int64](states[len(states)-1], "gold"); gold < 100 {
		t.Errorf("final gold = %d, want >= 100", gold)
	}
}

func TestAStar_NoPlanFound(t *testing.T) {
	t.Parallel()

	initial := world.State{"has_wood": world.Bool(false)}
	g := goal.NewBuilder("get_gold").Requires("has_gold", true).MustBuild()
	actions := []action.Action{
		action.NewBuilder("get_wood").Sets("has_wood", true).MustBuild(),
	}

	_, err := NewAStar().Plan(context.Background(), initial, g, actions)
	if !errors.Is(err, plan.ErrNoPlanFound) {
		t.Fatalf("Plan() error = %v, want ErrNoPlanFound", err)
	}
}

func TestAStar_IncompatibleStateTypes(t *testing.T) {
	t.Parallel()

	initial := world.NewState()
	g := goal.NewBuilder("finish").Requires("value", "done").MustBuild()
	actions := []action.Action{
		action.NewBuilder("set_value").Sets("value", 1).MustBuild(),
		action.NewBuilder("bump_value").Adds("value", 1).MustBuild(),
	}

	_, err := NewAStar().Plan(context.Background(), initial, g, actions)
	if !errors.Is(err, plan.ErrIncompatibleStateTypes) {
		t.Fatalf("Plan() error = %v, want ErrIncompatibleStateTypes", err)
	}
	if errors.Is(err, plan.ErrNoPlanFound) {
		t.Error("kind mismatch must not be reported as ErrNoPlanFound")
	}

	var incompatible *plan.IncompatibleStateError
	if !errors.As(err, &incompatible) {
		t.Fatalf("expected *plan.IncompatibleStateError, got %T", err)
	}
	if incompatible.Variable != "value" || incompatible.State != world.KindInteger || incompatible.Goal != world.KindText {
		t.Errorf("error = %+v", incompatible)
	}
}

func TestAStar_IncompatibleInitialState(t *testing.T) {
	t.Parallel()

	initial := world.State{"value": world.Int(3)}
	g := goal.NewBuilder("finish").Requires("value", "done").MustBuild()

	_, err := NewAStar().Plan(context.Background(), initial, g, nil)
	if !errors.Is(err, plan.ErrIncompatibleStateTypes) {
		t.Errorf("Plan() error = %v, want ErrIncompatibleStateTypes", err)
	}
}

func TestAStar_AlreadySatisfied(t *testing.T) {
	t.Parallel()

	initial := world.State{"has_wood": world.Bool(true)}
	g := goal.NewBuilder("get_wood").Requires("has_wood", true).MustBuild()

	p, err := NewAStar().Plan(context.Background(), initial, g, woodActions())
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if !p.IsEmpty() || p.Cost != 0 {
		t.Errorf("Plan() = %v, want empty plan with zero cost", p)
	}
	if p.Stats.Expanded != 0 {
		t.Errorf("Expanded = %d, want 0", p.Stats.Expanded)
	}
}

func TestAStar_PrefersCheaperChain(t *testing.T) {
	t.Parallel()

	actions := []action.Action{
		action.NewBuilder("teleport").Cost(10).Sets("at_goal", true).MustBuild(),
		action.NewBuilder("walk").Cost(1).Sets("halfway", true).MustBuild(),
		action.NewBuilder("arrive").Cost(1).Requires("halfway", true).Sets("at_goal", true).MustBuild(),
	}
	g := goal.NewBuilder("travel").Requires("at_goal", true).MustBuild()

	p, err := NewAStar().Plan(context.Background(), world.NewState(), g, actions)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if got, want := p.Names(), []string{"walk", "arrive"}; !slices.Equal(got, want) {
		t.Errorf("Plan() = %v, want %v", got, want)
	}
	if p.Cost != 2 {
		t.Errorf("Cost = %v, want 2", p.Cost)
	}
}

func TestAStar_TiesFollowActionOrder(t *testing.T) {
	t.Parallel()

	a := action.NewBuilder("a").Sets("done", true).MustBuild()
	b := action.NewBuilder("b").Sets("done", true).MustBuild()
	g := goal.NewBuilder("finish").Requires("done", true).MustBuild()

	tests := []struct {
		name    string
		actions []action.Action
		want    string
	}{
		{"a first", []action.Action{a, b}, "a"},
		{"b first", []action.Action{b, a}, "b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewAStar().Plan(context.Background(), world.NewState(), g, tt.actions)
			if err != nil {
				t.Fatalf("Plan() error = %v", err)
			}
			if p.Len() != 1 || p.Actions[0].Name != tt.want {
				t.Errorf("Plan() = %v, want [%s]", p.Names(), tt.want)
			}
		})
	}
}

func TestAStar_Deterministic(t *testing.T) {
	t.Parallel()

	initial := world.State{"gold": world.Int(0), "wood": world.Int(0)}
	g := goal.NewBuilder("stock").Requires("gold", 50).Requires("wood", 20).MustBuild()
	actions := []action.Action{
		action.NewBuilder("mine").Cost(2).Adds("gold", 25).MustBuild(),
		action.NewBuilder("chop").Cost(1).Adds("wood", 10).MustBuild(),
		action.NewBuilder("trade").Cost(1).Requires("wood", 10).Subtracts("wood", 10).Adds("gold", 20).MustBuild(),
	}

	planner := NewAStar()
	first, err := planner.Plan(context.Background(), initial, g, actions)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	for i := 0; i < 10; i++ {
		again, err := planner.Plan(context.Background(), initial.Clone(), g, actions)
		if err != nil {
			t.Fatalf("Plan() error = %v", err)
		}
		if !slices.Equal(first.Names(), again.Names()) || first.Cost != again.Cost {
			t.Fatalf("run %d: %v (%v), want %v (%v)", i, again.Names(), again.Cost, first.Names(), first.Cost)
		}
	}
}

func TestAStar_CostEqualsSumOfActions(t *testing.T) {
	t.Parallel()

	initial := world.State{"gold": world.Int(0)}
	g := goal.NewBuilder("rich").Requires("gold", 200).MustBuild()
	actions := []action.Action{
		action.NewBuilder("small_job").Cost(1.5).Adds("gold", 30).MustBuild(),
		action.NewBuilder("big_job").Cost(3.25).Adds("gold", 80).MustBuild(),
	}

	p, err := NewAStar().Plan(context.Background(), initial, g, actions)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	var sum float64
	for _, a := range p.Actions {
		sum += a.Cost
	}
	if sum != p.Cost {
		t.Errorf("Cost = %v, sum of actions = %v", p.Cost, sum)
	}
}

func TestAStar_UniformCostIsOptimal(t *testing.T) {
	t.Parallel()

	initial := world.State{"gold": world.Int(0)}
	g := goal.NewBuilder("rich").Requires("gold", 100).MustBuild()
	actions := []action.Action{
		action.NewBuilder("small_job").Cost(1).Adds("gold", 30).MustBuild(),
		action.NewBuilder("big_job").Cost(3).Adds("gold", 80).MustBuild(),
		action.NewBuilder("jackpot").Cost(5).Adds("gold", 100).MustBuild(),
	}

	p, err := NewAStar(WithHeuristic(ZeroHeuristic)).Plan(context.Background(), initial, g, actions)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if p.Cost != 4 {
		t.Errorf("Cost = %v, want 4", p.Cost)
	}
}

func TestAStar_DecimalState(t *testing.T) {
	t.Parallel()

	initial := world.State{"energy": world.Decimal(0)}
	g := goal.NewBuilder("rested").Requires("energy", 1.0).MustBuild()
	actions := []action.Action{
		action.NewBuilder("rest").Cost(1).AddsFloat("energy", 0.25).MustBuild(),
	}

	p, err := NewAStar().Plan(context.Background(), initial, g, actions)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if p.Len() != 4 || p.Cost != 4 {
		t.Errorf("Plan() = %v with cost %v, want 4 rests", p.Names(), p.Cost)
	}
}

func TestAStar_MaxExpansions(t *testing.T) {
	t.Parallel()

	initial := world.State{"gold": world.Int(0)}
	g := goal.NewBuilder("rich").Requires("gold", 100).MustBuild()
	actions := []action.Action{
		action.NewBuilder("spend").Subtracts("gold", 1).MustBuild(),
	}

	_, err := NewAStar(WithMaxExpansions(50)).Plan(context.Background(), initial, g, actions)
	if !errors.Is(err, plan.ErrSearchExhausted) {
		t.Fatalf("Plan() error = %v, want ErrSearchExhausted", err)
	}
}

func TestAStar_ContextCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	initial := world.State{"has_axe": world.Bool(true)}
	g := goal.NewBuilder("get_wood").Requires("has_wood", true).MustBuild()

	_, err := NewAStar().Plan(ctx, initial, g, woodActions())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Plan() error = %v, want context.Canceled", err)
	}
}

func TestAStar_InvalidInputs(t *testing.T) {
	t.Parallel()

	g := goal.NewBuilder("g").Requires("x", true).MustBuild()
	bad := action.New("bad", -1, nil, nil)

	_, err := NewAStar().Plan(context.Background(), world.NewState(), g, []action.Action{bad})
	if !errors.Is(err, plan.ErrInvalidAction) || !errors.Is(err, action.ErrInvalidCost) {
		t.Errorf("Plan() error = %v, want ErrInvalidAction wrapping ErrInvalidCost", err)
	}

	unnamed := action.New("", 1, nil, world.Effects{"x": world.Set(world.Bool(true))})
	_, err = NewAStar().Plan(context.Background(), world.NewState(), g, []action.Action{unnamed})
	if !errors.Is(err, plan.ErrInvalidAction) || !errors.Is(err, action.ErrEmptyName) {
		t.Errorf("Plan() error = %v, want ErrInvalidAction wrapping ErrEmptyName", err)
	}

	_, err = NewAStar().Plan(context.Background(), world.NewState(), goal.New("", nil, 0), nil)
	if !errors.Is(err, plan.ErrInvalidGoal) || !errors.Is(err, goal.ErrEmptyName) {
		t.Errorf("Plan() error = %v, want ErrInvalidGoal wrapping ErrEmptyName", err)
	}
}

func TestAStar_DoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	initial := world.State{"has_axe": world.Bool(true), "has_wood": world.Bool(false)}
	snapshot := initial.Clone()
	g := goal.NewBuilder("get_wood").Requires("has_wood", true).MustBuild()

	if _, err := NewAStar().Plan(context.Background(), initial, g, woodActions()); err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if !initial.Equal(snapshot) {
		t.Errorf("initial state mutated: %v", initial)
	}
}

func TestAStar_ConcurrentCalls(t *testing.T) {
	t.Parallel()

	planner := NewAStar()
	g := goal.NewBuilder("get_wood").Requires("has_wood", true).MustBuild()

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			initial := world.State{"has_axe": world.Bool(true)}
			p, err := planner.Plan(context.Background(), initial, g, woodActions())
			if err == nil && p.Cost != 3 {
				err = errors.New("unexpected cost")
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Error(err)
		}
	}
}

func TestAStar_Variant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []Option
		want string
	}{
		{"default", nil, "astar:distance:0"},
		{"bounded", []Option{WithMaxExpansions(50)}, "astar:distance:50"},
		{"negative budget is unbounded", []Option{WithMaxExpansions(-3)}, "astar:distance:0"},
		{"named heuristic", []Option{WithNamedHeuristic(HeuristicZero, ZeroHeuristic)}, "astar:zero:0"},
		{"custom heuristic", []Option{WithHeuristic(ZeroHeuristic), WithMaxExpansions(5)}, "astar:custom:5"},
		{"nil heuristic ignored", []Option{WithNamedHeuristic("none", nil)}, "astar:distance:0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewAStar(tt.opts...).Variant(); got != tt.want {
				t.Errorf("Variant() = %q, want %q", got, tt.want)
			}
		})
	}
}
