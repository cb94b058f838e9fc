// Package application composes the planner with caching, logging, metrics,
// tracing and plan execution.
package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/felixgeelhaar/goap-go/domain/action"
	"github.com/felixgeelhaar/goap-go/domain/cache"
	"github.com/felixgeelhaar/goap-go/domain/execution"
	"github.com/felixgeelhaar/goap-go/domain/goal"
	"github.com/felixgeelhaar/goap-go/domain/plan"
	"github.com/felixgeelhaar/goap-go/domain/world"
	"github.com/felixgeelhaar/goap-go/infrastructure/logging"
	"github.com/felixgeelhaar/goap-go/infrastructure/observability"
	"github.com/felixgeelhaar/goap-go/infrastructure/telemetry"
)

// Service is the planning façade.
type Service struct {
	planner  plan.Planner
	cache    cache.Cache
	cacheTTL time.Duration
	variant  string
	timeout  time.Duration
	metrics  telemetry.Metrics
	tracer   trace.Tracer
	executor *Executor
}

// ServiceConfig contains configuration for the service.
type ServiceConfig struct {
	// Planner computes plans. Required.
	Planner plan.Planner

	// Cache memoizes plans. Nil disables caching.
	Cache cache.Cache

	// CacheTTL is the lifetime of cached plans. Zero keeps them until evicted.
	CacheTTL time.Duration

	// CacheVariant separates cache entries computed under different planner
	// settings. Empty takes the variant from a planner that reports one.
	CacheVariant string

	// Timeout bounds a single planning call. Zero disables it.
	Timeout time.Duration

	// Metrics records planning metrics. Nil disables metrics.
	Metrics telemetry.Metrics

	// Tracer starts planning spans. Nil uses a no-op tracer.
	Tracer trace.Tracer

	// Executor runs plans. Nil builds a simulating executor.
	Executor *Executor
}

// variantPlanner is implemented by planners whose settings change the plan
// they return for the same inputs.
type variantPlanner interface {
	Variant() string
}

// Result is a computed plan with its bookkeeping.
type Result struct {
	ID       string
	Goal     goal.Goal
	Plan     plan.Plan
	Cached   bool
	Duration time.Duration
}

// NewService creates a new service with the given configuration.
func NewService(config ServiceConfig) (*Service, error) {
	if config.Planner == nil {
		return nil, ErrPlannerRequired
	}

	s := &Service{
		planner:  config.Planner,
		cache:    config.Cache,
		cacheTTL: config.CacheTTL,
		variant:  config.CacheVariant,
		timeout:  config.Timeout,
		metrics:  config.Metrics,
		tracer:   config.Tracer,
		executor: config.Executor,
	}

	if s.variant == "" {
		if v, ok := config.Planner.(variantPlanner); ok {
			s.variant = v.Variant()
		}
	}
	if s.metrics == nil {
		s.metrics = &telemetry.NoopMetricsProvider{}
	}
	if s.tracer == nil {
		s.tracer = observability.NewNoopProvider().Tracer()
	}
	if s.executor == nil {
		s.executor = NewExecutor(ExecutorConfig{Metrics: s.metrics, Tracer: s.tracer})
	}

	return s, nil
}

// Plan computes a plan reaching g from initial.
func (s *Service) Plan(ctx context.Context, initial world.State, g goal.Goal, actions []action.Action) (Result, error) {
	result := Result{ID: uuid.NewString(), Goal: g}
	start := time.Now()

	ctx, span := observability.StartSpan(ctx, s.tracer, "goap.plan",
		observability.AttrPlanID.String(result.ID),
		observability.AttrGoal.String(g.Name),
		observability.AttrPriority.Int(g.Priority),
		observability.AttrActions.Int(len(actions)),
	)

	p, cached, err := s.plan(ctx, initial, g, actions)
	result.Plan = p
	result.Cached = cached
	result.Duration = time.Since(start)

	outcome := outcomeOf(err)
	s.metrics.RecordPlan(ctx, g.Name, outcome, p.Stats.Expanded, p.Len(), p.Cost, result.Duration)

	if err != nil {
		s.metrics.RecordError(ctx, outcome, map[string]string{"goal": g.Name})
		logging.Warn().
			Add(logging.PlanID(result.ID)).
			Add(logging.Goal(g.Name)).
			Add(logging.Duration(result.Duration)).
			Add(logging.ErrorField(err)).
			Msg("planning failed")
		observability.EndSpan(span, err)
		return result, err
	}

	span.SetAttributes(
		observability.AttrSteps.Int(p.Len()),
		observability.CostAttribute(p.Cost),
		observability.AttrExpanded.Int(p.Stats.Expanded),
		observability.AttrGenerated.Int(p.Stats.Generated),
		observability.AttrCached.Bool(cached),
	)
	observability.EndSpan(span, nil)

	logging.Info().
		Add(logging.PlanID(result.ID)).
		Add(logging.Goal(g.Name)).
		Add(logging.Steps(p.Len())).
		Add(logging.Cost(p.Cost)).
		Add(logging.Expanded(p.Stats.Expanded)).
		Add(logging.Cached(cached)).
		Add(logging.Duration(result.Duration)).
		Msg("plan found")

	return result, nil
}

// PlanBest plans for the goals in priority order and returns the first
// that can be reached. Unreachable goals are skipped; any other error
// stops the search.
func (s *Service) PlanBest(ctx context.Context, initial world.State, goals goal.Set, actions []action.Action) (Result, error) {
	if len(goals) == 0 {
		return Result{}, ErrNoGoals
	}

	var errs []error
	for _, g := range goals.ByPriority() {
		result, err := s.Plan(ctx, initial, g, actions)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, plan.ErrNoPlanFound) && !errors.Is(err, plan.ErrSearchExhausted) {
			return result, err
		}

		logging.Debug().
			Add(logging.Goal(g.Name)).
			Add(logging.Priority(g.Priority)).
			Add(logging.ErrorField(err)).
			Msg("goal unreachable, trying next")
		errs = append(errs, fmt.Errorf("%s: %w", g.Name, err))
	}

	return Result{}, fmt.Errorf("%w: %w", ErrNoReachableGoal, errors.Join(errs...))
}

// Run plans for the best reachable goal and executes the plan.
func (s *Service) Run(ctx context.Context, initial world.State, goals goal.Set, actions []action.Action) (Result, *execution.Execution, error) {
	result, err := s.PlanBest(ctx, initial, goals, actions)
	if err != nil {
		return result, nil, err
	}
	exec, err := s.executor.Execute(ctx, initial, result.Goal, result.Plan)
	return result, exec, err
}

// Executor returns the executor used by Run.
func (s *Service) Executor() *Executor {
	return s.executor
}

func (s *Service) plan(ctx context.Context, initial world.State, g goal.Goal, actions []action.Action) (plan.Plan, bool, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if s.cache == nil {
		p, err := s.planner.Plan(ctx, initial, g, actions)
		return p, false, err
	}

	key := cache.PlanKey(initial, g, actions, s.variant)
	if p, ok := s.lookup(ctx, key, g, actions); ok {
		return p, true, nil
	}

	p, err := s.planner.Plan(ctx, initial, g, actions)
	if err != nil {
		return p, false, err
	}
	s.store(ctx, key, p, actions)
	return p, false, nil
}

// lookup reads a cached plan. Cache failures are logged and treated as
// misses; a corrupt entry is dropped.
func (s *Service) lookup(ctx context.Context, key string, g goal.Goal, actions []action.Action) (plan.Plan, bool) {
	data, found, err := s.cache.Get(ctx, key)
	if err != nil {
		logging.Warn().
			Add(logging.Component("cache")).
			Add(logging.Operation("get")).
			Add(logging.ErrorField(err)).
			Msg("cache lookup failed")
		s.metrics.RecordCacheMiss(ctx, g.Name)
		return plan.Plan{}, false
	}
	if !found {
		s.metrics.RecordCacheMiss(ctx, g.Name)
		return plan.Plan{}, false
	}

	entry, err := cache.UnmarshalEntry(data)
	var p plan.Plan
	if err == nil {
		p, err = entry.Plan(actions)
	}
	if err != nil {
		logging.Warn().
			Add(logging.Component("cache")).
			Add(logging.Str("key", key)).
			Add(logging.ErrorField(err)).
			Msg("dropping corrupt cache entry")
		_ = s.cache.Delete(ctx, key)
		s.metrics.RecordCacheMiss(ctx, g.Name)
		return plan.Plan{}, false
	}

	s.metrics.RecordCacheHit(ctx, g.Name)
	return p, true
}

func (s *Service) store(ctx context.Context, key string, p plan.Plan, actions []action.Action) {
	entry, err := cache.NewEntry(p, actions)
	var data []byte
	if err == nil {
		data, err = entry.Marshal()
	}
	if err == nil {
		err = s.cache.Set(ctx, key, data, cache.SetOptions{TTL: s.cacheTTL})
	}
	if err != nil {
		logging.Warn().
			Add(logging.Component("cache")).
			Add(logging.Operation("set")).
			Add(logging.ErrorField(err)).
			Msg("cache store failed")
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return telemetry.OutcomeFound
	case errors.Is(err, plan.ErrNoPlanFound):
		return telemetry.OutcomeNoPlan
	case errors.Is(err, plan.ErrSearchExhausted):
		return telemetry.OutcomeExhausted
	case errors.Is(err, plan.ErrIncompatibleStateTypes):
		return telemetry.OutcomeIncompatible
	case errors.Is(err, plan.ErrInvalidAction), errors.Is(err, plan.ErrInvalidGoal):
		return telemetry.OutcomeInvalid
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return telemetry.OutcomeCanceled
	default:
		return telemetry.OutcomeError
	}
}
