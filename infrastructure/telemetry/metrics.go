// Package telemetry provides OpenTelemetry metrics for planning and plan
// execution.
package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Planning outcomes used as the "outcome" attribute.
const (
	OutcomeFound        = "found"
	OutcomeNoPlan       = "no_plan"
	OutcomeExhausted    = "exhausted"
	OutcomeIncompatible = "incompatible"
	OutcomeInvalid      = "invalid"
	OutcomeCanceled     = "canceled"
	OutcomeError        = "error"
)

// Metrics is what the planning service and executor report to.
type Metrics interface {
	RecordPlan(ctx context.Context, goalName, outcome string, expanded, steps int, cost float64, duration time.Duration)
	RecordActionExecution(ctx context.Context, actionName string, success bool, duration time.Duration)
	RecordExecutionDuration(ctx context.Context, duration time.Duration, finalPhase string, success bool)
	RecordCacheHit(ctx context.Context, goalName string)
	RecordCacheMiss(ctx context.Context, goalName string)
	RecordError(ctx context.Context, errorType string, details map[string]string)
	IncrementActiveExecutions(ctx context.Context)
	DecrementActiveExecutions(ctx context.Context)
	RecordCircuitBreakerStateChange(ctx context.Context, actionName string, isOpen bool)
}

// MetricsConfig selects the meter. A nil MeterProvider means the otel global.
type MetricsConfig struct {
	MeterName     string
	MeterVersion  string
	MeterProvider metric.MeterProvider

	// Attributes are added to every measurement.
	Attributes []attribute.KeyValue
}

func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		MeterName:    "github.com/felixgeelhaar/goap-go",
		MeterVersion: "1.0.0",
	}
}

// MetricsProvider records planner and executor measurements with otel
// instruments.
type MetricsProvider struct {
	base []attribute.KeyValue

	plans, expansions, steps, cacheHits, cacheMisses, errors metric.Int64Counter

	planLength metric.Int64Histogram

	planDuration, planCost, stepDuration, runDuration metric.Float64Histogram

	activeRuns, openBreakers metric.Int64UpDownCounter

	initErr error
}

// NewMetricsProvider creates every instrument up front. Instruments that fail
// to register stay no-op and the failure is reported by Error.
func NewMetricsProvider(config MetricsConfig) *MetricsProvider {
	if config.MeterName == "" {
		config.MeterName = DefaultMetricsConfig().MeterName
	}
	mp := config.MeterProvider
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(config.MeterName, metric.WithInstrumentationVersion(config.MeterVersion))

	p := &MetricsProvider{base: config.Attributes}
	var errs []error
	counter := func(name, desc, unit string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
		errs = append(errs, err)
		return c
	}
	seconds := func(name, desc string) metric.Float64Histogram {
		h, err := meter.Float64Histogram(name, metric.WithDescription(desc), metric.WithUnit("s"))
		errs = append(errs, err)
		return h
	}
	gauge := func(name, desc, unit string) metric.Int64UpDownCounter {
		g, err := meter.Int64UpDownCounter(name, metric.WithDescription(desc), metric.WithUnit(unit))
		errs = append(errs, err)
		return g
	}

	p.plans = counter("goap.plans", "Planning requests by goal and outcome", "{plan}")
	p.expansions = counter("goap.search.expansions", "World states expanded by A*", "{state}")
	p.steps = counter("goap.action.executions", "Plan steps executed", "{step}")
	p.cacheHits = counter("goap.cache.hits", "Plans served from the cache", "{plan}")
	p.cacheMisses = counter("goap.cache.misses", "Plan lookups that had to search", "{plan}")
	p.errors = counter("goap.errors", "Failed plans, steps and other errors", "{error}")

	p.planDuration = seconds("goap.planning.duration", "Wall time of a planning request")
	p.stepDuration = seconds("goap.action.duration", "Wall time of one plan step")
	p.runDuration = seconds("goap.execution.duration", "Wall time of a whole plan execution")

	var err error
	p.planCost, err = meter.Float64Histogram("goap.plan.cost", metric.WithDescription("Total cost of found plans"))
	errs = append(errs, err)
	p.planLength, err = meter.Int64Histogram("goap.plan.length",
		metric.WithDescription("Steps in found plans"), metric.WithUnit("{step}"))
	errs = append(errs, err)

	p.activeRuns = gauge("goap.executions.active", "Plan executions in progress", "{execution}")
	p.openBreakers = gauge("goap.circuitbreaker.open", "Actions whose circuit breaker is open", "{breaker}")

	p.initErr = errors.Join(errs...)
	return p
}

// Error reports instrument registration failures.
func (p *MetricsProvider) Error() error {
	return p.initErr
}

func (p *MetricsProvider) attrs(kv ...attribute.KeyValue) metric.MeasurementOption {
	if len(p.base) == 0 {
		return metric.WithAttributes(kv...)
	}
	return metric.WithAttributes(append(append([]attribute.KeyValue{}, p.base...), kv...)...)
}

// RecordPlan counts a planning request. Cost and length are recorded only
// when a plan was found; every other outcome also counts as an error.
func (p *MetricsProvider) RecordPlan(ctx context.Context, goalName, outcome string, expanded, steps int, cost float64, duration time.Duration) {
	opt := p.attrs(attribute.String("goal.name", goalName), attribute.String("outcome", outcome))

	p.plans.Add(ctx, 1, opt)
	p.expansions.Add(ctx, int64(expanded), opt)
	p.planDuration.Record(ctx, duration.Seconds(), opt)

	if outcome != OutcomeFound {
		p.errors.Add(ctx, 1, p.attrs(attribute.String("error.type", "planning"), attribute.String("outcome", outcome)))
		return
	}
	p.planCost.Record(ctx, cost, opt)
	p.planLength.Record(ctx, int64(steps), opt)
}

func (p *MetricsProvider) RecordActionExecution(ctx context.Context, actionName string, success bool, duration time.Duration) {
	opt := p.attrs(attribute.String("action.name", actionName), attribute.Bool("success", success))
	p.steps.Add(ctx, 1, opt)
	p.stepDuration.Record(ctx, duration.Seconds(), opt)
	if !success {
		p.errors.Add(ctx, 1, p.attrs(attribute.String("error.type", "action_execution"), attribute.String("action.name", actionName)))
	}
}

func (p *MetricsProvider) RecordExecutionDuration(ctx context.Context, duration time.Duration, finalPhase string, success bool) {
	p.runDuration.Record(ctx, duration.Seconds(),
		p.attrs(attribute.String("phase.final", finalPhase), attribute.Bool("success", success)))
}

func (p *MetricsProvider) RecordCacheHit(ctx context.Context, goalName string) {
	p.cacheHits.Add(ctx, 1, p.attrs(attribute.String("goal.name", goalName)))
}

func (p *MetricsProvider) RecordCacheMiss(ctx context.Context, goalName string) {
	p.cacheMisses.Add(ctx, 1, p.attrs(attribute.String("goal.name", goalName)))
}

// RecordError counts an error of errorType; details become attributes.
func (p *MetricsProvider) RecordError(ctx context.Context, errorType string, details map[string]string) {
	kv := make([]attribute.KeyValue, 0, len(details)+1)
	kv = append(kv, attribute.String("error.type", errorType))
	for k, v := range details {
		kv = append(kv, attribute.String(k, v))
	}
	p.errors.Add(ctx, 1, p.attrs(kv...))
}

func (p *MetricsProvider) IncrementActiveExecutions(ctx context.Context) {
	p.activeRuns.Add(ctx, 1, p.attrs())
}

func (p *MetricsProvider) DecrementActiveExecutions(ctx context.Context) {
	p.activeRuns.Add(ctx, -1, p.attrs())
}

// RecordCircuitBreakerStateChange moves the open-breaker gauge by one.
func (p *MetricsProvider) RecordCircuitBreakerStateChange(ctx context.Context, actionName string, isOpen bool) {
	delta := int64(-1)
	if isOpen {
		delta = 1
	}
	p.openBreakers.Add(ctx, delta, p.attrs(attribute.String("action.name", actionName)))
}

// NoopMetricsProvider discards everything.
type NoopMetricsProvider struct{}

func (*NoopMetricsProvider) RecordPlan(context.Context, string, string, int, int, float64, time.Duration) {
}

func (*NoopMetricsProvider) RecordActionExecution(context.Context, string, bool, time.Duration) {}

func (*NoopMetricsProvider) RecordExecutionDuration(context.Context, time.Duration, string, bool) {}

func (*NoopMetricsProvider) RecordCacheHit(context.Context, string) {}

func (*NoopMetricsProvider) RecordCacheMiss(context.Context, string) {}

func (*NoopMetricsProvider) RecordError(context.Context, string, map[string]string) {}

func (*NoopMetricsProvider) IncrementActiveExecutions(context.Context) {}

func (*NoopMetricsProvider) DecrementActiveExecutions(context.Context) {}

func (*NoopMetricsProvider) RecordCircuitBreakerStateChange(context.Context, string, bool) {}

var (
	_ Metrics = (*MetricsProvider)(nil)
	_ Metrics = (*NoopMetricsProvider)(nil)
)
