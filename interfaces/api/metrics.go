package api

import (
	"io"

	"github.com/felixgeelhaar/goap-go/infrastructure/observability"
	"github.com/felixgeelhaar/goap-go/infrastructure/telemetry"
)

// Metrics and tracing.
type (
	Metrics             = telemetry.Metrics
	MetricsProvider     = telemetry.MetricsProvider
	MetricsConfig       = telemetry.MetricsConfig
	NoopMetricsProvider = telemetry.NoopMetricsProvider

	TracingProvider = observability.Provider
	TracingOption   = observability.Option
)

// NewMetricsProvider registers the planner and executor instruments: plan
// calls and latency, expansions, plan cost and length, cache hits, step
// outcomes and breaker state. Check Error before use.
func NewMetricsProvider(config MetricsConfig) *MetricsProvider {
	return telemetry.NewMetricsProvider(config)
}

func DefaultMetricsConfig() MetricsConfig {
	return telemetry.DefaultMetricsConfig()
}

// NewTracingProvider builds a tracer for WithTracer. Call Shutdown to flush
// spans before exit.
//
//	tp, _ := api.NewTracingProvider(api.TraceToWriter(os.Stderr))
//	defer tp.Shutdown(ctx)
//	svc, _ := api.New(api.WithTracer(tp.Tracer()))
func NewTracingProvider(opts ...TracingOption) (*TracingProvider, error) {
	return observability.New(opts...)
}

// TraceToWriter pretty-prints spans to w.
func TraceToWriter(w io.Writer) TracingOption {
	return observability.WithStdoutTracing(w)
}

// TraceToOTLP exports spans to an OTLP gRPC collector.
func TraceToOTLP(endpoint string) TracingOption {
	return observability.WithOTLP(endpoint)
}
