package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"capitol/constellation/internal/graph"
)

var (
	pathsK    int
	pathsJSON bool
)

var pathsCmd = &cobra.Command{
	Use:   "paths <from> <to>",
	Short: "Rank the best introduction routes between two stakeholders",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig()
		if err != nil {
			return err
		}
		snap, err := LoadSnapshot()
		if err != nil {
			return err
		}

		from, err := ResolveNode(snap, args[0])
		if err != nil {
			return err
		}
		to, err := ResolveNode(snap, args[1])
		if err != nil {
			return err
		}

		k := pathsK
		if !cmd.Flags().Changed("k") {
			k = cfg.Paths.DefaultK
		}

		results, err := NewEngine(snap, cfg).FindPaths(cmd.Context(), from.ID, to.ID, k)
		if err != nil {
			return err
		}

		if pathsJSON {
			output := struct {
				From  graph.Node         `json:"from"`
				To    graph.Node         `json:"to"`
				K     int                `json:"k"`
				Paths []graph.PathResult `json:"paths"`
				Count int                `json:"count"`
			}{from, to, k, results, len(results)}
			return writeJSON(cmd.OutOrStdout(), output)
		}

		printPaths(cmd.OutOrStdout(), snap, from, to, results)
		return nil
	},
}

func init() {
	pathsCmd.Flags().IntVarP(&pathsK, "k", "k", 3, "Max paths to return")
	pathsCmd.Flags().BoolVar(&pathsJSON, "json", false, "JSON output")
	rootCmd.AddCommand(pathsCmd)
}

func printPaths(w io.Writer, snap *graph.Snapshot, from, to graph.Node, results []graph.PathResult) {
	if len(results) == 0 {
		fmt.Fprintf(w, "No path from %s to %s\n", from.Label, to.Label)
		return
	}

	fmt.Fprintf(w, "Paths from %s (%s) to %s (%s)\n\n", from.Label, from.ID, to.Label, to.ID)

	for i, r := range results {
		labels := make([]string, len(r.Path))
		for j, id := range r.Path {
			labels[j] = nodeLabel(snap, id, 30)
		}
		fmt.Fprintf(w, "  %d. score=%d hops=%d weakest=%d  %s\n",
			i+1, r.Score, r.Length, r.WeakestLink, r.EstimatedTimeline)
		fmt.Fprintf(w, "     %s\n", truncateMiddle(strings.Join(labels, " → "), 120))

		for j, c := range r.IntermediateConnections {
			fmt.Fprintf(w, "       →[%d %s] %s\n", c.RelationshipStrength, c.Sentiment, c.Context)
			fmt.Fprintf(w, "         • %s\n", r.Recommendations[j])
		}
	}

	fmt.Fprintf(w, "\n%d path(s)\n", len(results))
}
