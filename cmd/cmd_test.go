package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"capitol/constellation/internal/graph"
)

const networkYAML = `
nodes:
  - {id: C1, type: client, label: Acme Health, influenceScore: 5, lastUpdated: 2026-02-01T00:00:00Z}
  - {id: S1, type: staff, label: Dana Whitfield, influenceScore: 7, lastUpdated: 2026-02-01T00:00:00Z}
  - {id: L1, type: legislator, label: Sen. Maria Reyes, influenceScore: 8, lastUpdated: 2026-02-01T00:00:00Z}
  - {id: L2, type: legislator, label: Rep. Dan Reyes, influenceScore: 6, lastUpdated: 2026-02-01T00:00:00Z}
  - {id: I1, type: issue, label: Rural clinic funding, influenceScore: 0, lastUpdated: 2025-01-01T00:00:00Z}
edges:
  - {source: C1, target: S1, type: support, weight: 8, sentiment: positive}
  - {source: S1, target: L1, type: support, weight: 9, sentiment: positive}
  - {source: C1, target: L1, type: neutral, weight: 3, sentiment: neutral}
  - {source: L1, target: L2, type: oppose, weight: 5, sentiment: negative}
`

// resetFlags restores every flag to its default between command runs
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// chdir changes the working directory for the test and restores it on cleanup
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

// isolate runs the test from an empty directory with no env overrides
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv(envData, "")
	t.Setenv("CONSTELLATION_ADDR", "")
	return dir
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeNetwork(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDiscoverSource_Priority(t *testing.T) {
	dir := isolate(t)
	resetFlags(rootCmd)

	_, err := DiscoverSource()
	assert.Error(t, err)

	// Walk-up finds a data file in a parent directory
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	yamlPath := writeNetwork(t, dir, "constellation.yaml", networkYAML)
	dbFile := writeNetwork(t, dir, defaultDBName, "")
	chdir(t, nested)

	src, err := DiscoverSource()
	require.NoError(t, err)
	assert.Equal(t, sourceFile, src.Kind)
	assert.Equal(t, yamlPath, src.Path)

	// --db beats walk-up
	dbPath = dbFile
	src, err = DiscoverSource()
	require.NoError(t, err)
	assert.Equal(t, Source{Kind: sourceDB, Path: dbFile}, src)

	// --data beats --db
	other := writeNetwork(t, dir, "other.json", "{}")
	dataPath = other
	src, err = DiscoverSource()
	require.NoError(t, err)
	assert.Equal(t, Source{Kind: sourceFile, Path: other}, src)

	// env beats everything
	t.Setenv(envData, dbFile)
	src, err = DiscoverSource()
	require.NoError(t, err)
	assert.Equal(t, Source{Kind: sourceDB, Path: dbFile}, src)

	// a missing --data path is an error, not a fallback
	t.Setenv(envData, "")
	dataPath = filepath.Join(dir, "missing.yaml")
	_, err = DiscoverSource()
	assert.ErrorContains(t, err, "--data")
	resetFlags(rootCmd)
}

func testNetwork(t *testing.T) *graph.Snapshot {
	t.Helper()
	dir := isolate(t)
	resetFlags(rootCmd)
	dataPath = writeNetwork(t, dir, "net.yaml", networkYAML)
	snap, err := LoadSnapshot()
	require.NoError(t, err)
	resetFlags(rootCmd)
	return snap
}

func TestResolveNode(t *testing.T) {
	snap := testNetwork(t)

	tests := []struct {
		name    string
		ref     string
		wantID  string
		wantErr string
	}{
		{"exact id", "L1", "L1", ""},
		{"unique prefix", "S", "S1", ""},
		{"ambiguous prefix", "L", "", "ambiguous"},
		{"label search", "whitfield", "S1", ""},
		{"label multiple matches", "maria reyes", "", "ambiguous"},
		{"label unique", "clinic funding", "I1", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := ResolveNode(snap, tt.ref)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, node.ID)
		})
	}

	_, err := ResolveNode(snap, "nobody at all")
	assert.True(t, errors.Is(err, graph.ErrNodeNotFound))
}

func TestMetricsCommand_JSON(t *testing.T) {
	dir := isolate(t)
	path := writeNetwork(t, dir, "net.yaml", networkYAML)

	out, err := runCLI(t, "metrics", "--json", "--data", path)
	require.NoError(t, err)

	var m graph.NetworkMetrics
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, 5, m.TotalNodes)
	assert.Equal(t, 4, m.TotalConnections)
	assert.Equal(t, 2, m.StrongConnections)
	assert.Equal(t, []string{"I1"}, m.IsolatedNodes)
}

func TestMetricsCommand_TypeFilter(t *testing.T) {
	dir := isolate(t)
	path := writeNetwork(t, dir, "net.yaml", networkYAML)

	out, err := runCLI(t, "metrics", "--json", "--types", "legislator", "--data", path)
	require.NoError(t, err)

	var m graph.NetworkMetrics
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, 2, m.TotalNodes)
	assert.Equal(t, 1, m.TotalConnections)

	_, err = runCLI(t, "metrics", "--types", "lobbyist", "--data", path)
	assert.ErrorContains(t, err, "unknown node type")
}

func TestMetricsCommand_Human(t *testing.T) {
	dir := isolate(t)
	path := writeNetwork(t, dir, "net.yaml", networkYAML)

	out, err := runCLI(t, "metrics", "--data", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Network Health:")
	assert.Contains(t, out, "TOPOLOGY")
	assert.Contains(t, out, "Rural clinic funding")
}

func TestPathsCommand(t *testing.T) {
	dir := isolate(t)
	path := writeNetwork(t, dir, "net.yaml", networkYAML)

	out, err := runCLI(t, "paths", "C1", "L1", "-k", "1", "--json", "--data", path)
	require.NoError(t, err)

	var resp struct {
		K     int                `json:"k"`
		Paths []graph.PathResult `json:"paths"`
		Count int                `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 1, resp.K)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, []string{"C1", "S1", "L1"}, resp.Paths[0].Path)

	out, err = runCLI(t, "paths", "acme", "whitfield", "--data", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Paths from Acme Health (C1) to Dana Whitfield (S1)")
	assert.Contains(t, out, "1–2 weeks")

	out, err = runCLI(t, "paths", "C1", "I1", "--data", path)
	require.NoError(t, err)
	assert.Contains(t, out, "No path")

	_, err = runCLI(t, "paths", "C1", "L1", "-k", "0", "--data", path)
	assert.True(t, errors.Is(err, graph.ErrInvalidArgument))
}

func TestPathsCommand_DefaultKFromConfig(t *testing.T) {
	dir := isolate(t)
	path := writeNetwork(t, dir, "net.yaml", networkYAML)
	writeNetwork(t, dir, configName, "[paths]\ndefault_k = 1\n")

	out, err := runCLI(t, "paths", "C1", "L1", "--json", "--data", path)
	require.NoError(t, err)

	var resp struct {
		K     int `json:"k"`
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 1, resp.K)
	assert.Equal(t, 1, resp.Count)
}

func TestConnectionsCommand(t *testing.T) {
	dir := isolate(t)
	path := writeNetwork(t, dir, "net.yaml", networkYAML)

	out, err := runCLI(t, "connections", "L1", "--json", "--data", path)
	require.NoError(t, err)

	var resp struct {
		Connections []graph.Edge `json:"connections"`
		Count       int          `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, 3, resp.Count)
	assert.Equal(t, 9, resp.Connections[0].Weight)

	out, err = runCLI(t, "connections", "I1", "--data", path)
	require.NoError(t, err)
	assert.Contains(t, out, "has no connections")
}

func TestDanglingEdges(t *testing.T) {
	dir := isolate(t)
	path := writeNetwork(t, dir, "net.yaml", networkYAML+`  - {source: C1, target: GHOST, type: support, weight: 4}
`)

	_, err := runCLI(t, "metrics", "--json", "--data", path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, graph.ErrDanglingEdge))

	out, err := runCLI(t, "metrics", "--json", "--drop-dangling", "--data", path)
	require.NoError(t, err)
	var m graph.NetworkMetrics
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, 4, m.TotalConnections)
}

func TestImportThenQueryDatabase(t *testing.T) {
	dir := isolate(t)
	path := writeNetwork(t, dir, "net.yaml", networkYAML)
	dbFile := filepath.Join(dir, "net.db")

	out, err := runCLI(t, "import", path, "--db", dbFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 5 nodes and 4 edges")

	out, err = runCLI(t, "metrics", "--json", "--db", dbFile)
	require.NoError(t, err)
	var m graph.NetworkMetrics
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, 5, m.TotalNodes)
	assert.Equal(t, 4, m.TotalConnections)
}

func TestInvalidLogLevel(t *testing.T) {
	dir := isolate(t)
	path := writeNetwork(t, dir, "net.yaml", networkYAML)
	_, err := runCLI(t, "metrics", "--log-level", "loud", "--data", path)
	assert.ErrorContains(t, err, "log-level")
}
