package resilience

import (
	"testing"
	"time"

	domainconfig "github.com/felixgeelhaar/goap-go/domain/config"
)

func TestOptions(t *testing.T) {
	t.Parallel()

	config := DefaultExecutorConfig()
	for _, opt := range []Option{
		WithMaxConcurrent(20),
		WithCircuitBreaker(7, time.Minute),
		WithRetry(4, time.Second),
		WithTimeout(2 * time.Second),
	} {
		opt(&config)
	}

	if config.MaxConcurrent != 20 {
		t.Errorf("MaxConcurrent = %d, want 20", config.MaxConcurrent)
	}
	if !config.CircuitBreakerEnabled || config.CircuitBreakerThreshold != 7 || config.CircuitBreakerTimeout != time.Minute {
		t.Errorf("circuit breaker = %v %d %v", config.CircuitBreakerEnabled, config.CircuitBreakerThreshold, config.CircuitBreakerTimeout)
	}
	if !config.RetryEnabled || config.RetryMaxAttempts != 4 || config.RetryInitialDelay != time.Second {
		t.Errorf("retry = %v %d %v", config.RetryEnabled, config.RetryMaxAttempts, config.RetryInitialDelay)
	}
	if config.DefaultTimeout != 2*time.Second {
		t.Errorf("DefaultTimeout = %v, want 2s", config.DefaultTimeout)
	}

	WithoutRetry()(&config)
	WithoutCircuitBreaker()(&config)
	if config.RetryEnabled || config.CircuitBreakerEnabled {
		t.Error("Without* options should disable the pattern")
	}
}

func TestFromConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input domainconfig.ResilienceConfig
		check func(*testing.T, ExecutorConfig)
	}{
		{
			name:  "empty disables retry and breaker",
			input: domainconfig.ResilienceConfig{},
			check: func(t *testing.T, c ExecutorConfig) {
				if c.RetryEnabled || c.CircuitBreakerEnabled {
					t.Errorf("retry=%v breaker=%v, want both disabled", c.RetryEnabled, c.CircuitBreakerEnabled)
				}
				if c.DefaultTimeout != 30*time.Second {
					t.Errorf("DefaultTimeout = %v, want default", c.DefaultTimeout)
				}
			},
		},
		{
			name: "explicit values",
			input: domainconfig.ResilienceConfig{
				Timeout: domainconfig.Duration(time.Second),
				Retry: domainconfig.RetryConfig{
					Enabled:      true,
					MaxAttempts:  5,
					InitialDelay: domainconfig.Duration(50 * time.Millisecond),
					Multiplier:   1.5,
				},
				CircuitBreaker: domainconfig.CircuitBreakerConfig{
					Enabled:   true,
					Threshold: 2,
					Timeout:   domainconfig.Duration(time.Minute),
				},
			},
			check: func(t *testing.T, c ExecutorConfig) {
				if c.DefaultTimeout != time.Second {
					t.Errorf("DefaultTimeout = %v", c.DefaultTimeout)
				}
				if !c.RetryEnabled || c.RetryMaxAttempts != 5 || c.RetryInitialDelay != 50*time.Millisecond || c.RetryBackoffMultiplier != 1.5 {
					t.Errorf("retry = %+v", c)
				}
				if !c.CircuitBreakerEnabled || c.CircuitBreakerThreshold != 2 || c.CircuitBreakerTimeout != time.Minute {
					t.Errorf("breaker = %+v", c)
				}
			},
		},
		{
			name: "enabled keeps defaults for unset values",
			input: domainconfig.ResilienceConfig{
				Retry: domainconfig.RetryConfig{Enabled: true},
			},
			check: func(t *testing.T, c ExecutorConfig) {
				if c.RetryMaxAttempts != 3 || c.RetryInitialDelay != 100*time.Millisecond {
					t.Errorf("retry = %d %v, want defaults", c.RetryMaxAttempts, c.RetryInitialDelay)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.check(t, FromConfig(tt.input))
		})
	}
}
