package observability

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys used by the planner service.
const (
	AttrGoal      = attribute.Key("goap.goal")
	AttrPriority  = attribute.Key("goap.goal.priority")
	AttrActions   = attribute.Key("goap.actions")
	AttrSteps     = attribute.Key("goap.plan.steps")
	AttrCost      = attribute.Key("goap.plan.cost")
	AttrExpanded  = attribute.Key("goap.search.expanded")
	AttrGenerated = attribute.Key("goap.search.generated")
	AttrCached    = attribute.Key("goap.cache.hit")
	AttrAction    = attribute.Key("goap.action")
	AttrStep      = attribute.Key("goap.step")
	AttrPlanID    = attribute.Key("goap.plan.id")
)

// StartSpan starts an internal span.
func StartSpan(ctx context.Context, tracer trace.Tracer, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// EndSpan records err on span, sets its status and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// CostAttribute formats a plan cost with three decimals.
func CostAttribute(cost float64) attribute.KeyValue {
	return AttrCost.String(strconv.FormatFloat(cost, 'f', 3, 64))
}

// TraceID returns the trace ID of the span in ctx, or the empty string.
func TraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}
