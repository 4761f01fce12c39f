package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"capitol/constellation/internal/graph"
)

var connectionsJSON bool

var connectionsCmd = &cobra.Command{
	Use:   "connections <node>",
	Short: "List a stakeholder's relationships, strongest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig()
		if err != nil {
			return err
		}
		snap, err := LoadSnapshot()
		if err != nil {
			return err
		}

		node, err := ResolveNode(snap, args[0])
		if err != nil {
			return err
		}

		edges, err := NewEngine(snap, cfg).GetConnections(cmd.Context(), node.ID)
		if err != nil {
			return err
		}

		if connectionsJSON {
			output := struct {
				Node        graph.Node   `json:"node"`
				Connections []graph.Edge `json:"connections"`
				Count       int          `json:"count"`
			}{node, edges, len(edges)}
			return writeJSON(cmd.OutOrStdout(), output)
		}

		printConnections(cmd.OutOrStdout(), snap, node, edges)
		return nil
	},
}

func init() {
	connectionsCmd.Flags().BoolVar(&connectionsJSON, "json", false, "JSON output")
	rootCmd.AddCommand(connectionsCmd)
}

func printConnections(w io.Writer, snap *graph.Snapshot, node graph.Node, edges []graph.Edge) {
	if len(edges) == 0 {
		fmt.Fprintf(w, "%s (%s) has no connections\n", node.Label, node.ID)
		return
	}

	fmt.Fprintf(w, "Connections for: %s (%s, %s)\n\n", node.Label, node.ID, node.Type)
	for _, e := range edges {
		marker := "   "
		if e.IsStrong() {
			marker = "[S]"
		}
		last := "no interactions"
		if in, ok := e.LastInteraction(); ok {
			last = fmt.Sprintf("last %s %s", in.Type, in.Date.Format("2006-01-02"))
		}
		other := e.Other(node.ID)
		fmt.Fprintf(w, "  %s %2d %-8s %-9s %s — %s\n",
			marker, e.Weight, e.Type, e.EffectiveSentiment(), nodeLabel(snap, other, 40), last)
	}
	fmt.Fprintf(w, "\n%d connection(s)\n", len(edges))
}
