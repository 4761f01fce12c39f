package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"capitol/constellation/internal/graph"
)

// Package-level tracer and meter for engine queries.
var (
	tracer = otel.Tracer("constellation.engine")
	meter  = otel.Meter("constellation.engine")
)

var (
	queryTotal   metric.Int64Counter
	queryLatency metric.Float64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the instruments. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		queryTotal, err = meter.Int64Counter(
			"constellation_queries_total",
			metric.WithDescription("Total number of engine queries"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		queryLatency, err = meter.Float64Histogram(
			"constellation_query_duration_seconds",
			metric.WithDescription("Duration of engine queries"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// outcome classifies a query error for metric attributes
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, graph.ErrNodeNotFound):
		return "not_found"
	case errors.Is(err, graph.ErrInvalidArgument):
		return "invalid_argument"
	default:
		return "error"
	}
}

func recordQuery(ctx context.Context, queryType string, duration time.Duration, err error) {
	if initMetrics() != nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("query_type", queryType),
		attribute.String("outcome", outcome(err)),
	)
	queryTotal.Add(ctx, 1, attrs)
	queryLatency.Record(ctx, duration.Seconds(), attrs)
}

func startQuerySpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name)
}

func setError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

func setMetricsSpanResult(span trace.Span, m graph.NetworkMetrics) {
	span.SetAttributes(
		attribute.Int("graph.node_count", m.TotalNodes),
		attribute.Int("graph.edge_count", m.TotalConnections),
		attribute.Float64("graph.health_score", m.HealthScore),
	)
}

func setPathsSpanResult(span trace.Span, source, target string, k, found int, err error) {
	span.SetAttributes(
		attribute.String("paths.source", source),
		attribute.String("paths.target", target),
		attribute.Int("paths.k", k),
		attribute.Int("paths.found", found),
	)
	setError(span, err)
}

func setConnectionsSpanResult(span trace.Span, id string, count int, err error) {
	span.SetAttributes(
		attribute.String("connections.node", id),
		attribute.Int("connections.count", count),
	)
	setError(span, err)
}
