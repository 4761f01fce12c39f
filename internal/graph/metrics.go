package graph

import "time"

// NetworkMetrics is the network-wide summary recomputed for every snapshot
type NetworkMetrics struct {
	HealthScore           float64         `json:"healthScore"`
	HealthLabel           string          `json:"healthLabel"`
	HealthBreakdown       HealthBreakdown `json:"healthBreakdown"`
	NetworkDensity        float64         `json:"networkDensity"`
	DensityLabel          string          `json:"densityLabel"`
	ClusteringCoefficient float64         `json:"clusteringCoefficient"`
	AveragePathLength     float64         `json:"averagePathLength"`
	TotalNodes            int             `json:"totalNodes"`
	TotalConnections      int             `json:"totalConnections"`
	StrongConnections     int             `json:"strongConnections"`
	WeakConnections       int             `json:"weakConnections"`
	RecentActivity        int             `json:"recentActivity"`

	StrengthHistogram     []StrengthBucket       `json:"strengthHistogram"`
	Components            int                    `json:"components"`
	IsolatedNodes         []string               `json:"isolatedNodes"`
	KeyConnectors         []KeyConnector         `json:"keyConnectors"`
	CriticalRelationships []CriticalRelationship `json:"criticalRelationships"`
	DormantRelationships  []DormantRelationship  `json:"dormantRelationships"`
}

// ComputeMetrics derives network statistics from the snapshot.
// The result depends only on the snapshot and opts; opts.Now anchors every time window.
func ComputeMetrics(snap *Snapshot, opts MetricsOptions) NetworkMetrics {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	m := NetworkMetrics{
		TotalNodes:        len(snap.nodes),
		TotalConnections:  len(snap.edges),
		StrengthHistogram: strengthHistogram(snap.edges),
	}
	for _, e := range snap.edges {
		if e.IsStrong() {
			m.StrongConnections++
		}
	}
	m.WeakConnections = m.TotalConnections - m.StrongConnections

	m.NetworkDensity = density(m.TotalNodes, m.TotalConnections)
	m.ClusteringCoefficient = snap.clusteringCoefficient()
	m.AveragePathLength = snap.averagePathLength()
	m.RecentActivity = recentActivity(snap.edges, opts.Now, opts.RecentWindow)

	m.HealthScore, m.HealthBreakdown = healthScore(&m, opts)
	m.HealthLabel = HealthLabel(m.HealthScore)
	m.DensityLabel = DensityLabel(m.NetworkDensity)

	if m.TotalNodes > 0 {
		m.Components = snap.components().count()
	}
	m.IsolatedNodes = truncate(snap.isolatedNodes(), opts.TopN)
	aps, critical := snap.keyConnectors()
	m.KeyConnectors = truncate(aps, opts.TopN)
	m.CriticalRelationships = truncate(critical, opts.TopN)
	m.DormantRelationships = truncate(dormantRelationships(snap.edges, opts.Now, opts.StaleDays), opts.TopN)

	return m
}

// truncate caps a list at n entries; n <= 0 keeps everything
func truncate[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
