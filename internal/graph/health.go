package graph

import "time"

// HealthWeights are the coefficients of the health composite.
// All must be non-negative for the score to stay monotone in its inputs.
type HealthWeights struct {
	Density     float64 `json:"density"`
	Clustering  float64 `json:"clustering"`
	StrongRatio float64 `json:"strongRatio"`
	Activity    float64 `json:"activity"`
}

// HealthBreakdown shows the normalized sub-scores of the health formula
type HealthBreakdown struct {
	Density     float64 `json:"density"`
	Clustering  float64 `json:"clustering"`
	StrongRatio float64 `json:"strongRatio"`
	Activity    float64 `json:"activity"`
}

// MetricsOptions holds analysis parameters
type MetricsOptions struct {
	Now            time.Time
	RecentWindow   time.Duration
	ActivityTarget int // recent interactions that count as full activity
	StaleDays      int
	TopN           int
	Weights        HealthWeights
}

// DefaultMetricsOptions returns sensible defaults
func DefaultMetricsOptions() MetricsOptions {
	return MetricsOptions{
		Now:            time.Now(),
		RecentWindow:   30 * 24 * time.Hour,
		ActivityTarget: 10,
		StaleDays:      60,
		TopN:           10,
		Weights: HealthWeights{
			Density:     0.25,
			Clustering:  0.20,
			StrongRatio: 0.35,
			Activity:    0.20,
		},
	}
}

const (
	HealthGood           = "good"
	HealthFair           = "fair"
	HealthPoor           = "poor"
	DensityGood          = "good"
	DensityNeedsImprove  = "needs improvement"
	healthGoodThreshold  = 75.0
	healthFairThreshold  = 50.0
	densityGoodThreshold = 0.4
)

// HealthLabel buckets a health score into good/fair/poor
func HealthLabel(score float64) string {
	switch {
	case score >= healthGoodThreshold:
		return HealthGood
	case score >= healthFairThreshold:
		return HealthFair
	default:
		return HealthPoor
	}
}

// DensityLabel buckets network density
func DensityLabel(density float64) string {
	if density >= densityGoodThreshold {
		return DensityGood
	}
	return DensityNeedsImprove
}

// healthScore combines the sub-scores into [0,100].
// An empty edge set scores 0.
func healthScore(m *NetworkMetrics, opts MetricsOptions) (float64, HealthBreakdown) {
	if m.TotalConnections == 0 {
		return 0, HealthBreakdown{}
	}

	var b HealthBreakdown
	b.Density = clamp(m.NetworkDensity, 0, 1)
	b.Clustering = clamp(m.ClusteringCoefficient, 0, 1)
	b.StrongRatio = float64(m.StrongConnections) / float64(m.TotalConnections)
	if opts.ActivityTarget > 0 {
		b.Activity = clamp(float64(m.RecentActivity)/float64(opts.ActivityTarget), 0, 1)
	} else if m.RecentActivity > 0 {
		b.Activity = 1
	}

	w := opts.Weights
	raw := w.Density*b.Density + w.Clustering*b.Clustering + w.StrongRatio*b.StrongRatio + w.Activity*b.Activity
	return clamp(raw*100, 0, 100), b
}

func clamp(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
