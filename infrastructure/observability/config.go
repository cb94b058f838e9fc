// Package observability wires OpenTelemetry tracing for planning and plan
// execution.
package observability

import (
	"io"
	"time"
)

// ExporterType names a span exporter.
type ExporterType string

// Supported exporters.
const (
	ExporterNoop   ExporterType = "noop"
	ExporterStdout ExporterType = "stdout"
	ExporterOTLP   ExporterType = "otlp"
)

// ParseExporter converts a flag value to an exporter type. "none" and the
// empty string map to ExporterNoop.
func ParseExporter(s string) (ExporterType, bool) {
	switch s {
	case "", "none", string(ExporterNoop):
		return ExporterNoop, true
	case string(ExporterStdout):
		return ExporterStdout, true
	case string(ExporterOTLP):
		return ExporterOTLP, true
	default:
		return "", false
	}
}

// Config describes the traced service and where its spans go.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	Tracing        TracingConfig
}

// TracingConfig selects and tunes the span exporter.
type TracingConfig struct {
	Enabled  bool
	Exporter ExporterType

	// Endpoint is the OTLP gRPC collector address.
	Endpoint string
	Insecure bool

	// Writer receives pretty-printed spans from the stdout exporter.
	// Nil means os.Stdout.
	Writer io.Writer

	// SampleRate in [0, 1]. Values outside the range clamp.
	SampleRate float64

	BatchTimeout       time.Duration
	MaxExportBatchSize int

	// Global installs the provider and W3C propagators as the otel globals.
	Global bool
}

// DefaultConfig returns a disabled tracing configuration.
func DefaultConfig() Config {
	return Config{
		ServiceName:    "goap",
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Tracing: TracingConfig{
			Exporter:           ExporterNoop,
			SampleRate:         1.0,
			BatchTimeout:       5 * time.Second,
			MaxExportBatchSize: 512,
		},
	}
}

// Option mutates a Config.
type Option func(*Config)

func WithServiceName(name string) Option {
	return func(c *Config) { c.ServiceName = name }
}

func WithServiceVersion(version string) Option {
	return func(c *Config) { c.ServiceVersion = version }
}

func WithEnvironment(env string) Option {
	return func(c *Config) { c.Environment = env }
}

// WithTracing enables the given exporter. Endpoint is only read by OTLP.
func WithTracing(exporter ExporterType, endpoint string) Option {
	return func(c *Config) {
		c.Tracing.Enabled = true
		c.Tracing.Exporter = exporter
		c.Tracing.Endpoint = endpoint
	}
}

// WithStdoutTracing pretty-prints spans to w.
func WithStdoutTracing(w io.Writer) Option {
	return func(c *Config) {
		WithTracing(ExporterStdout, "")(c)
		c.Tracing.Writer = w
	}
}

// WithOTLP exports spans over gRPC without TLS, the usual setup for a local
// collector sidecar.
func WithOTLP(endpoint string) Option {
	return func(c *Config) {
		WithTracing(ExporterOTLP, endpoint)(c)
		c.Tracing.Insecure = true
	}
}

func WithTracingInsecure() Option {
	return func(c *Config) { c.Tracing.Insecure = true }
}

func WithSampleRate(rate float64) Option {
	return func(c *Config) { c.Tracing.SampleRate = rate }
}

// WithGlobal registers the provider with otel.SetTracerProvider.
func WithGlobal() Option {
	return func(c *Config) { c.Tracing.Global = true }
}
