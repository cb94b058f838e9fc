// Package api provides the public API for the goap-go library.
// This file provides the planning service and plan execution exports.
package api

import (
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/felixgeelhaar/goap-go/application"
	domaincache "github.com/felixgeelhaar/goap-go/domain/cache"
	"github.com/felixgeelhaar/goap-go/domain/execution"
	"github.com/felixgeelhaar/goap-go/infrastructure/resilience"
	"github.com/felixgeelhaar/goap-go/infrastructure/storage/memory"
)

// Re-export application types.
type (
	// Service is the planning façade with caching, metrics and tracing.
	Service = application.Service
	// ServiceConfig configures the service.
	ServiceConfig = application.ServiceConfig
	// ServiceOption configures the service.
	ServiceOption = application.Option
	// PlanResult is a computed plan with its bookkeeping.
	PlanResult = application.Result
	// Executor runs plans step by step.
	Executor = application.Executor
	// ExecutorConfig configures the executor.
	ExecutorConfig = application.ExecutorConfig
	// StepObserver is notified after every executed step.
	StepObserver = application.Observer
)

// Re-export execution types.
type (
	// Execution is a single run of a plan.
	Execution = execution.Execution
	// ExecutionStep records one executed action.
	ExecutionStep = execution.Step
	// ExecutionStatus is the lifecycle status of an execution.
	ExecutionStatus = execution.Status
	// Handler performs one action against the world.
	Handler = execution.Handler
	// HandlerFunc adapts a function to Handler.
	HandlerFunc = execution.HandlerFunc
	// Router dispatches actions to handlers by name.
	Router = execution.Router
	// ResilientHandler wraps a handler with retry and circuit breaking.
	ResilientHandler = resilience.Executor
	// ResilienceOption configures a resilient handler.
	ResilienceOption = resilience.Option
)

// Re-export cache types.
type (
	// Cache stores encoded plans.
	Cache = domaincache.Cache
	// MemoryCache is an in-memory LRU plan cache.
	MemoryCache = memory.Cache
)

// Execution statuses.
const (
	StatusPending   = execution.StatusPending
	StatusRunning   = execution.StatusRunning
	StatusSucceeded = execution.StatusSucceeded
	StatusFailed    = execution.StatusFailed
)

// Re-export application and execution errors.
var (
	ErrPlannerRequired    = application.ErrPlannerRequired
	ErrNoGoals            = application.ErrNoGoals
	ErrNoReachableGoal    = application.ErrNoReachableGoal
	ErrPreconditionFailed = execution.ErrPreconditionFailed
	ErrHandlerFailed      = execution.ErrHandlerFailed
	ErrGoalNotReached     = execution.ErrGoalNotReached
	ErrNoHandler          = execution.ErrNoHandler
)

// Simulate is the handler that applies an action's declared effects.
var Simulate = execution.Simulate

// New creates a planning service around an A* planner unless WithPlanner
// overrides it.
func New(opts ...ServiceOption) (*Service, error) {
	return application.NewServiceWithOptions(append([]ServiceOption{WithPlanner(NewPlanner())}, opts...)...)
}

// WithPlanner sets the planner.
func WithPlanner(p Planner) ServiceOption {
	return application.WithPlanner(p)
}

// WithCache enables plan caching.
func WithCache(c Cache, ttl time.Duration) ServiceOption {
	return application.WithCache(c, ttl)
}

// WithCacheVariant separates cached plans by planner settings. Without it the
// variant comes from the planner.
func WithCacheVariant(variant string) ServiceOption {
	return application.WithCacheVariant(variant)
}

// WithPlanTimeout bounds each planning call.
func WithPlanTimeout(d time.Duration) ServiceOption {
	return application.WithTimeout(d)
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m Metrics) ServiceOption {
	return application.WithMetrics(m)
}

// WithTracer sets the tracer used for planning spans.
func WithTracer(t trace.Tracer) ServiceOption {
	return application.WithTracer(t)
}

// WithExecutor sets the plan executor.
func WithExecutor(e *Executor) ServiceOption {
	return application.WithExecutor(e)
}

// NewExecutor creates a plan executor.
func NewExecutor(config ExecutorConfig) *Executor {
	return application.NewExecutor(config)
}

// NewRouter creates a handler router. A nil fallback fails unknown actions.
func NewRouter(fallback Handler) *Router {
	return execution.NewRouter(fallback)
}

// NewResilientHandler wraps h with bulkhead, timeout, circuit breaker and retry.
func NewResilientHandler(h Handler, opts ...ResilienceOption) *ResilientHandler {
	return resilience.NewExecutorWithOptions(h, opts...)
}

// NewMemoryCache creates an in-memory LRU plan cache.
func NewMemoryCache(maxSize int) *MemoryCache {
	return memory.NewCache(memory.WithMaxSize(maxSize))
}

// WithRetry retries failed handler calls with exponential backoff.
func WithRetry(attempts int, delay time.Duration) ResilienceOption {
	return resilience.WithRetry(attempts, delay)
}

// WithoutRetry disables retries.
func WithoutRetry() ResilienceOption {
	return resilience.WithoutRetry()
}

// WithCircuitBreaker opens the breaker after threshold consecutive failures.
func WithCircuitBreaker(threshold int, timeout time.Duration) ResilienceOption {
	return resilience.WithCircuitBreaker(threshold, timeout)
}

// WithoutCircuitBreaker disables the circuit breaker.
func WithoutCircuitBreaker() ResilienceOption {
	return resilience.WithoutCircuitBreaker()
}

// WithHandlerTimeout bounds a single handler call.
func WithHandlerTimeout(d time.Duration) ResilienceOption {
	return resilience.WithTimeout(d)
}
