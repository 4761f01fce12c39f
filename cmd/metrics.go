package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"capitol/constellation/internal/graph"
)

var (
	metricsJSON  bool
	metricsSince string
	metricsTypes string
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Network health: density, clustering, strong ties, recent activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig()
		if err != nil {
			return err
		}
		snap, err := LoadSnapshot()
		if err != nil {
			return err
		}

		if metricsSince != "" {
			d, err := parseSince(metricsSince)
			if err != nil {
				return err
			}
			snap = snap.FilterUpdatedSince(time.Now().Add(-d))
		}
		if metricsTypes != "" {
			types, err := parseTypes(metricsTypes)
			if err != nil {
				return err
			}
			snap = snap.FilterTypes(types...)
		}

		start := time.Now()
		m := NewEngine(snap, cfg).GetMetrics(cmd.Context())

		if metricsJSON {
			return writeJSON(cmd.OutOrStdout(), m)
		}
		printMetrics(cmd.OutOrStdout(), m, snap, time.Since(start))
		return nil
	},
}

func init() {
	metricsCmd.Flags().BoolVar(&metricsJSON, "json", false, "Output as JSON")
	metricsCmd.Flags().StringVar(&metricsSince, "since", "", "Only nodes updated within this window (e.g. 30d, 720h)")
	metricsCmd.Flags().StringVar(&metricsTypes, "types", "", "Comma-separated node types to include")
	rootCmd.AddCommand(metricsCmd)
}

func parseTypes(raw string) ([]graph.NodeType, error) {
	var types []graph.NodeType
	for _, part := range strings.Split(raw, ",") {
		t := graph.NodeType(strings.TrimSpace(part))
		if t == "" {
			continue
		}
		if !t.Valid() {
			return nil, fmt.Errorf("unknown node type %q", t)
		}
		types = append(types, t)
	}
	return types, nil
}

func printMetrics(w io.Writer, m graph.NetworkMetrics, snap *graph.Snapshot, elapsed time.Duration) {
	fmt.Fprintf(w, "\n  Network Health: %.0f  [%s]  %s\n", m.HealthScore, healthBar(m.HealthScore), m.HealthLabel)
	fmt.Fprintf(w, "  breakdown: density=%.2f clustering=%.2f strong=%.2f activity=%.2f\n\n",
		m.HealthBreakdown.Density,
		m.HealthBreakdown.Clustering,
		m.HealthBreakdown.StrongRatio,
		m.HealthBreakdown.Activity)

	fmt.Fprintln(w, "  TOPOLOGY")
	fmt.Fprintln(w, "  ────────────────────────────────────────")
	fmt.Fprintf(w, "  Nodes: %d  Connections: %d  Components: %d\n", m.TotalNodes, m.TotalConnections, m.Components)
	fmt.Fprintf(w, "  Density: %.3f (%s)  Clustering: %.3f  Avg path: %.2f\n",
		m.NetworkDensity, m.DensityLabel, m.ClusteringCoefficient, m.AveragePathLength)
	fmt.Fprintf(w, "  Strong: %d  Weak: %d  Recent interactions: %d\n", m.StrongConnections, m.WeakConnections, m.RecentActivity)

	fmt.Fprintln(w, "\n  Strength distribution:")
	for _, b := range m.StrengthHistogram {
		fmt.Fprintf(w, "    %5s: %4d  %s\n", b.Label, b.Count, strings.Repeat("=", b.Count))
	}

	if len(m.IsolatedNodes) > 0 {
		fmt.Fprintf(w, "\n  Isolated: %d\n", len(m.IsolatedNodes))
		for _, id := range m.IsolatedNodes {
			fmt.Fprintf(w, "    - %s  %s\n", id, nodeLabel(snap, id, 40))
		}
	}

	if len(m.KeyConnectors) > 0 || len(m.CriticalRelationships) > 0 {
		fmt.Fprintln(w, "\n  KEY CONNECTORS")
		fmt.Fprintln(w, "  ────────────────────────────────────────")
		for _, kc := range m.KeyConnectors {
			fmt.Fprintf(w, "    %s (%s, degree %d)  %s\n", kc.ID, kc.Type, kc.Degree, truncLabel(kc.Label, 40))
		}
		for _, cr := range m.CriticalRelationships {
			fmt.Fprintf(w, "    %s <-> %s (weight %d)\n",
				nodeLabel(snap, cr.Source, 25), nodeLabel(snap, cr.Target, 25), cr.Weight)
		}
	}

	if len(m.DormantRelationships) > 0 {
		fmt.Fprintln(w, "\n  DORMANT STRONG RELATIONSHIPS")
		fmt.Fprintln(w, "  ────────────────────────────────────────")
		for _, d := range m.DormantRelationships {
			age := "never contacted"
			if !d.NeverInteracted {
				age = fmt.Sprintf("%dd since last contact", d.DaysSinceTouch)
			}
			fmt.Fprintf(w, "    %s <-> %s (weight %d) %s\n",
				nodeLabel(snap, d.Source, 25), nodeLabel(snap, d.Target, 25), d.Weight, age)
		}
	}

	fmt.Fprintf(w, "\n  computed in %s\n\n", formatDurationShort(elapsed))
}

func nodeLabel(snap *graph.Snapshot, id string, max int) string {
	if n, ok := snap.Node(id); ok {
		return truncLabel(n.Label, max)
	}
	return id
}
