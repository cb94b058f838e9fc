// Package resilience runs action handlers behind fortify's bulkhead,
// timeout, circuit breaker and retry patterns.
package resilience

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/fortify/bulkhead"
	"github.com/felixgeelhaar/fortify/circuitbreaker"
	"github.com/felixgeelhaar/fortify/retry"

	"github.com/felixgeelhaar/goap-go/domain/action"
	"github.com/felixgeelhaar/goap-go/domain/execution"
	"github.com/felixgeelhaar/goap-go/domain/world"
)

// Executor wraps an execution.Handler with resilience patterns.
// It is itself a Handler.
type Executor struct {
	handler  execution.Handler
	bulkhead bulkhead.Bulkhead[world.State]
	breaker  circuitbreaker.CircuitBreaker[world.State]
	retry    retry.Retry[world.State]
	timeout  time.Duration
}

var _ execution.Handler = (*Executor)(nil)

// ExecutorConfig configures the resilient executor.
type ExecutorConfig struct {
	// MaxConcurrent limits concurrent handler calls.
	MaxConcurrent int

	// CircuitBreakerEnabled puts a circuit breaker in front of the handler.
	CircuitBreakerEnabled bool

	// CircuitBreakerThreshold is the number of consecutive failures before opening.
	CircuitBreakerThreshold int

	// CircuitBreakerTimeout is how long the circuit stays open.
	CircuitBreakerTimeout time.Duration

	// RetryEnabled retries failed handler calls.
	RetryEnabled bool

	// RetryMaxAttempts is the maximum number of attempts.
	RetryMaxAttempts int

	// RetryInitialDelay is the initial delay between retries.
	RetryInitialDelay time.Duration

	// RetryBackoffMultiplier is the exponential backoff multiplier.
	RetryBackoffMultiplier float64

	// DefaultTimeout bounds a single handler call. Zero disables it.
	DefaultTimeout time.Duration
}

// DefaultExecutorConfig returns a configuration with sensible defaults.
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		MaxConcurrent:           10,
		CircuitBreakerEnabled:   true,
		CircuitBreakerThreshold: 5,
		CircuitBreakerTimeout:   30 * time.Second,
		RetryEnabled:            true,
		RetryMaxAttempts:        3,
		RetryInitialDelay:       100 * time.Millisecond,
		RetryBackoffMultiplier:  2.0,
		DefaultTimeout:          30 * time.Second,
	}
}

// NewExecutor creates a resilient executor around h.
func NewExecutor(h execution.Handler, config ExecutorConfig) *Executor {
	maxConcurrent := config.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}
	threshold := config.CircuitBreakerThreshold
	if threshold <= 0 {
		threshold = 5
	}

	e := &Executor{
		handler: h,
		bulkhead: bulkhead.New[world.State](bulkhead.Config{
			MaxConcurrent: maxConcurrent,
		}),
		timeout: config.DefaultTimeout,
	}

	if config.CircuitBreakerEnabled {
		e.breaker = circuitbreaker.New[world.State](circuitbreaker.Config{
			MaxRequests: uint32(maxConcurrent), // #nosec G115 -- bounds checked above
			Interval:    config.CircuitBreakerTimeout,
			Timeout:     config.CircuitBreakerTimeout,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return counts.ConsecutiveFailures >= uint32(threshold) // #nosec G115 -- bounds checked above
			},
		})
	}

	if config.RetryEnabled {
		attempts := config.RetryMaxAttempts
		if attempts < 1 {
			attempts = 1
		}
		multiplier := config.RetryBackoffMultiplier
		if multiplier < 1 {
			multiplier = 2.0
		}
		e.retry = retry.New[world.State](retry.Config{
			MaxAttempts:   attempts,
			InitialDelay:  config.RetryInitialDelay,
			BackoffPolicy: retry.BackoffExponential,
			Multiplier:    multiplier,
			// A missing handler or an unmet precondition will not heal on retry.
			NonRetryableErrors: []error{execution.ErrNoHandler, execution.ErrPreconditionFailed},
		})
	}

	return e
}

// NewDefaultExecutor creates an executor around h with default configuration.
func NewDefaultExecutor(h execution.Handler) *Executor {
	return NewExecutor(h, DefaultExecutorConfig())
}

// Execute runs the handler with resilience patterns applied.
// Composition order: Bulkhead → Timeout → Circuit Breaker → Retry
func (e *Executor) Execute(ctx context.Context, a action.Action, state world.State) (world.State, error) {
	next, err := e.bulkhead.Execute(ctx, func(ctx context.Context) (world.State, error) {
		if e.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, e.timeout)
			defer cancel()
		}

		call := func(ctx context.Context) (world.State, error) {
			return e.attempt(ctx, a, state)
		}
		if e.breaker != nil {
			return e.breaker.Execute(ctx, call)
		}
		return call(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", execution.ErrHandlerFailed, a.Name, err)
	}
	return next, nil
}

func (e *Executor) attempt(ctx context.Context, a action.Action, state world.State) (world.State, error) {
	if e.retry == nil {
		return e.handler.Execute(ctx, a, state)
	}
	return e.retry.Do(ctx, func(ctx context.Context) (world.State, error) {
		return e.handler.Execute(ctx, a, state)
	})
}

// ExecuteWithTimeout runs the handler with a custom outer timeout.
func (e *Executor) ExecuteWithTimeout(ctx context.Context, a action.Action, state world.State, timeout time.Duration) (world.State, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return e.Execute(ctx, a, state)
}

// CircuitBreakerState returns the current state of the circuit breaker.
// It reports closed when no breaker is configured.
func (e *Executor) CircuitBreakerState() circuitbreaker.State {
	if e.breaker == nil {
		var closed circuitbreaker.State
		return closed
	}
	return e.breaker.State()
}
