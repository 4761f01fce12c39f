// Package engine is the query facade over an immutable stakeholder snapshot.
// It exposes exactly three read-only operations and is safe for concurrent use.
package engine

import (
	"context"
	"time"

	"capitol/constellation/internal/graph"
)

// Policy bundles the tunable constants of both analyses
type Policy struct {
	Metrics graph.MetricsOptions
	Paths   graph.PathPolicy
}

// DefaultPolicy returns graph defaults for metrics and path scoring
func DefaultPolicy() Policy {
	return Policy{Metrics: graph.DefaultMetricsOptions(), Paths: graph.DefaultPathPolicy()}
}

// Option configures an Engine
type Option func(*Engine)

// WithPolicy replaces the default scoring and metrics policy
func WithPolicy(p Policy) Option {
	return func(e *Engine) { e.policy = p }
}

// WithClock sets the time source that anchors activity windows
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// Engine answers metrics, path and connection queries against one snapshot
type Engine struct {
	snap   *graph.Snapshot
	policy Policy
	now    func() time.Time
}

// New creates an Engine over snap
func New(snap *graph.Snapshot, opts ...Option) *Engine {
	e := &Engine{snap: snap, policy: DefaultPolicy(), now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GetMetrics computes network-wide health statistics
func (e *Engine) GetMetrics(ctx context.Context) graph.NetworkMetrics {
	ctx, span := startQuerySpan(ctx, "Engine.GetMetrics")
	defer span.End()
	start := time.Now()

	opts := e.policy.Metrics
	opts.Now = e.now()
	m := graph.ComputeMetrics(e.snap, opts)

	setMetricsSpanResult(span, m)
	recordQuery(ctx, "metrics", time.Since(start), nil)
	return m
}

// FindPaths returns up to k ranked routes from source to target
func (e *Engine) FindPaths(ctx context.Context, source, target string, k int) ([]graph.PathResult, error) {
	ctx, span := startQuerySpan(ctx, "Engine.FindPaths")
	defer span.End()
	start := time.Now()

	results, err := graph.FindTopPaths(e.snap, source, target, k, e.policy.Paths)
	setPathsSpanResult(span, source, target, k, len(results), err)
	recordQuery(ctx, "paths", time.Since(start), err)
	return results, err
}

// GetConnections lists the edges incident to id, strongest first
func (e *Engine) GetConnections(ctx context.Context, id string) ([]graph.Edge, error) {
	ctx, span := startQuerySpan(ctx, "Engine.GetConnections")
	defer span.End()
	start := time.Now()

	var err error
	var edges []graph.Edge
	if _, ok := e.snap.Node(id); !ok {
		err = &graph.NodeNotFoundError{ID: id}
	} else {
		edges = e.snap.ConnectionsOf(id)
	}

	setConnectionsSpanResult(span, id, len(edges), err)
	recordQuery(ctx, "connections", time.Since(start), err)
	return edges, err
}
