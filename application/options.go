package application

import (
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/felixgeelhaar/goap-go/domain/cache"
	"github.com/felixgeelhaar/goap-go/domain/plan"
	"github.com/felixgeelhaar/goap-go/infrastructure/telemetry"
)

// Option configures the service.
type Option func(*ServiceConfig)

// WithPlanner sets the planner.
func WithPlanner(p plan.Planner) Option {
	return func(c *ServiceConfig) {
		c.Planner = p
	}
}

// WithCache enables plan caching with the given entry lifetime.
func WithCache(cc cache.Cache, ttl time.Duration) Option {
	return func(c *ServiceConfig) {
		c.Cache = cc
		c.CacheTTL = ttl
	}
}

// WithCacheVariant separates cache entries by planner settings.
func WithCacheVariant(variant string) Option {
	return func(c *ServiceConfig) {
		c.CacheVariant = variant
	}
}

// WithTimeout bounds each planning call.
func WithTimeout(d time.Duration) Option {
	return func(c *ServiceConfig) {
		c.Timeout = d
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m telemetry.Metrics) Option {
	return func(c *ServiceConfig) {
		c.Metrics = m
	}
}

// WithTracer sets the tracer.
func WithTracer(t trace.Tracer) Option {
	return func(c *ServiceConfig) {
		c.Tracer = t
	}
}

// WithExecutor sets the plan executor used by Run.
func WithExecutor(e *Executor) Option {
	return func(c *ServiceConfig) {
		c.Executor = e
	}
}

// NewServiceWithOptions creates a service with functional options.
func NewServiceWithOptions(opts ...Option) (*Service, error) {
	config := ServiceConfig{}
	for _, opt := range opts {
		opt(&config)
	}
	return NewService(config)
}
