package resilience

import (
	"time"

	domainconfig "github.com/felixgeelhaar/goap-go/domain/config"
	"github.com/felixgeelhaar/goap-go/domain/execution"
)

// Option configures the executor.
type Option func(*ExecutorConfig)

// WithMaxConcurrent sets the maximum concurrent executions.
func WithMaxConcurrent(n int) Option {
	return func(c *ExecutorConfig) {
		c.MaxConcurrent = n
	}
}

// WithCircuitBreaker enables the circuit breaker with the failure threshold
// and open duration.
func WithCircuitBreaker(threshold int, timeout time.Duration) Option {
	return func(c *ExecutorConfig) {
		c.CircuitBreakerEnabled = true
		c.CircuitBreakerThreshold = threshold
		c.CircuitBreakerTimeout = timeout
	}
}

// WithoutCircuitBreaker disables the circuit breaker.
func WithoutCircuitBreaker() Option {
	return func(c *ExecutorConfig) {
		c.CircuitBreakerEnabled = false
	}
}

// WithRetry enables retries with the attempt budget and initial delay.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *ExecutorConfig) {
		c.RetryEnabled = true
		c.RetryMaxAttempts = attempts
		c.RetryInitialDelay = delay
	}
}

// WithoutRetry disables retries.
func WithoutRetry() Option {
	return func(c *ExecutorConfig) {
		c.RetryEnabled = false
	}
}

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *ExecutorConfig) {
		c.DefaultTimeout = d
	}
}

// NewExecutorWithOptions creates an executor around h with the given options.
func NewExecutorWithOptions(h execution.Handler, opts ...Option) *Executor {
	config := DefaultExecutorConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return NewExecutor(h, config)
}

// FromConfig maps scenario resilience settings onto an executor
// configuration. Unset values keep their defaults.
func FromConfig(rc domainconfig.ResilienceConfig) ExecutorConfig {
	config := DefaultExecutorConfig()

	if rc.Timeout > 0 {
		config.DefaultTimeout = rc.Timeout.Duration()
	}

	config.RetryEnabled = rc.Retry.Enabled
	if rc.Retry.MaxAttempts > 0 {
		config.RetryMaxAttempts = rc.Retry.MaxAttempts
	}
	if rc.Retry.InitialDelay > 0 {
		config.RetryInitialDelay = rc.Retry.InitialDelay.Duration()
	}
	if rc.Retry.Multiplier > 0 {
		config.RetryBackoffMultiplier = rc.Retry.Multiplier
	}

	config.CircuitBreakerEnabled = rc.CircuitBreaker.Enabled
	if rc.CircuitBreaker.Threshold > 0 {
		config.CircuitBreakerThreshold = rc.CircuitBreaker.Threshold
	}
	if rc.CircuitBreaker.Timeout > 0 {
		config.CircuitBreakerTimeout = rc.CircuitBreaker.Timeout.Duration()
	}

	return config
}
