package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/felixgeelhaar/goap-go/domain/action"
	"github.com/felixgeelhaar/goap-go/domain/execution"
	"github.com/felixgeelhaar/goap-go/domain/goal"
	"github.com/felixgeelhaar/goap-go/domain/plan"
	"github.com/felixgeelhaar/goap-go/domain/world"
	"github.com/felixgeelhaar/goap-go/infrastructure/behavior"
	"github.com/felixgeelhaar/goap-go/infrastructure/logging"
	"github.com/felixgeelhaar/goap-go/infrastructure/observability"
	"github.com/felixgeelhaar/goap-go/infrastructure/resilience"
	"github.com/felixgeelhaar/goap-go/infrastructure/statemachine"
	"github.com/felixgeelhaar/goap-go/infrastructure/telemetry"
)

// Observer is notified after every executed step.
type Observer func(exec *execution.Execution, step execution.Step)

// Executor runs plans step by step through a behavior tree while an
// execution state machine tracks the lifecycle.
type Executor struct {
	handler  execution.Handler
	metrics  telemetry.Metrics
	tracer   trace.Tracer
	observer Observer
}

// ExecutorConfig contains configuration for the executor.
type ExecutorConfig struct {
	// Handler performs actions. Nil simulates declared effects.
	Handler execution.Handler

	// Metrics records execution metrics. Nil disables metrics.
	Metrics telemetry.Metrics

	// Tracer starts execution spans. Nil uses a no-op tracer.
	Tracer trace.Tracer

	// Observer is called after every step.
	Observer Observer
}

// NewExecutor creates an executor.
func NewExecutor(config ExecutorConfig) *Executor {
	e := &Executor{
		handler:  config.Handler,
		metrics:  config.Metrics,
		tracer:   config.Tracer,
		observer: config.Observer,
	}
	if e.handler == nil {
		e.handler = execution.Simulate
	}
	if e.metrics == nil {
		e.metrics = &telemetry.NoopMetricsProvider{}
	}
	if e.tracer == nil {
		e.tracer = observability.NewNoopProvider().Tracer()
	}
	return e
}

// Execute runs p from initial toward g. The returned execution is always
// non-nil once the lifecycle machine was built, including on failure.
func (e *Executor) Execute(ctx context.Context, initial world.State, g goal.Goal, p plan.Plan) (*execution.Execution, error) {
	exec := execution.New(uuid.NewString(), g, p, initial)

	machine, err := statemachine.NewExecutionMachine()
	if err != nil {
		return nil, fmt.Errorf("failed to create state machine: %w", err)
	}
	interp := statemachine.NewInterpreter(machine, statemachine.NewContext(exec))
	interp.Start()
	defer interp.Stop()

	ctx, span := observability.StartSpan(ctx, e.tracer, "goap.execute",
		observability.AttrGoal.String(g.Name),
		observability.AttrSteps.Int(p.Len()),
	)

	e.metrics.IncrementActiveExecutions(ctx)
	defer e.metrics.DecrementActiveExecutions(ctx)

	logging.Info().
		Add(logging.ExecutionID(exec.ID)).
		Add(logging.Goal(g.Name)).
		Add(logging.Steps(p.Len())).
		Msg("execution started")

	if err := interp.Transition(execution.StatusRunning, "start"); err != nil {
		observability.EndSpan(span, err)
		return exec, err
	}

	runErr := behavior.Compile(ctx, p, g, &runner{executor: e, exec: exec}).Run()
	if runErr != nil {
		if err := interp.Transition(execution.StatusFailed, runErr.Error()); err != nil {
			logging.Warn().
				Add(logging.ExecutionID(exec.ID)).
				Add(logging.ErrorField(err)).
				Msg("failed to record execution failure")
		}
	} else if err := interp.Transition(execution.StatusSucceeded, "goal reached"); err != nil {
		runErr = err
		_ = interp.Transition(execution.StatusFailed, err.Error())
	}

	e.metrics.RecordExecutionDuration(ctx, exec.Duration(), string(exec.Status), runErr == nil)
	observability.EndSpan(span, runErr)

	if runErr != nil {
		logging.Error().
			Add(logging.ExecutionID(exec.ID)).
			Add(logging.Goal(g.Name)).
			Add(logging.Step(exec.NextStep())).
			Add(logging.ErrorField(runErr)).
			Msg("execution failed")
		return exec, runErr
	}

	logging.Info().
		Add(logging.ExecutionID(exec.ID)).
		Add(logging.Goal(g.Name)).
		Add(logging.Duration(exec.Duration())).
		Msg("execution completed")
	return exec, nil
}

// runner is the behavior tree blackboard for one execution.
type runner struct {
	executor *Executor
	exec     *execution.Execution
}

func (r *runner) State() world.State {
	return r.exec.State
}

func (r *runner) RunStep(ctx context.Context, index int, a action.Action) error {
	e := r.executor
	before := r.exec.State

	ctx, span := observability.StartSpan(ctx, e.tracer, "goap.step",
		observability.AttrAction.String(a.Name),
		observability.AttrStep.Int(index+1),
	)

	wasOpen := breakerOpen(e.handler)
	start := time.Now()
	after, err := e.handler.Execute(ctx, a, before)
	step := execution.Step{
		Index:    index,
		Action:   a.Name,
		Before:   before,
		After:    after,
		Duration: time.Since(start),
	}
	if err != nil {
		step.Error = err.Error()
		step.After = nil
	}
	r.exec.Record(step)

	if isOpen := breakerOpen(e.handler); isOpen != wasOpen {
		e.metrics.RecordCircuitBreakerStateChange(ctx, a.Name, isOpen)
	}
	e.metrics.RecordActionExecution(ctx, a.Name, err == nil, step.Duration)
	observability.EndSpan(span, err)

	logging.Debug().
		Add(logging.ExecutionID(r.exec.ID)).
		Add(logging.Step(index + 1)).
		Add(logging.Action(a.Name)).
		Add(logging.DurationNs(step.Duration)).
		Add(logging.StateField("state", r.exec.State)).
		Msg("step executed")

	if e.observer != nil {
		e.observer(r.exec, step)
	}
	return err
}

func breakerOpen(h execution.Handler) bool {
	rex, ok := h.(*resilience.Executor)
	return ok && rex.CircuitBreakerState().String() == "open"
}
