package graph

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weightedSnapshot(t *testing.T, influence map[string]float64, edges []Edge) *Snapshot {
	t.Helper()
	seen := map[string]bool{}
	var nodes []Node
	add := func(id string) {
		if seen[id] {
			return
		}
		seen[id] = true
		inf, ok := influence[id]
		if !ok {
			inf = 5
		}
		nodes = append(nodes, testNode(id, NodeStakeholder, inf))
	}
	for _, e := range edges {
		add(e.Source)
		add(e.Target)
	}
	for id := range influence {
		add(id)
	}
	snap, err := NewSnapshot(nodes, edges)
	require.NoError(t, err)
	return snap
}

func w(src, dst string, weight int) Edge {
	return testEdge(src, dst, weight, SentimentPositive)
}

func pathIDs(results []PathResult) []string {
	var out []string
	for _, r := range results {
		out = append(out, strings.Join(r.Path, "-"))
	}
	return out
}

func TestFindTopPaths_DirectClientToLegislator(t *testing.T) {
	nodes := []Node{testNode("L1", NodeLegislator, 8), testNode("C1", NodeClient, 5)}
	edges := []Edge{{Source: "L1", Target: "C1", Type: EdgeSupport, Weight: 9, Sentiment: SentimentPositive}}
	snap, err := NewSnapshot(nodes, edges)
	require.NoError(t, err)

	results, err := FindTopPaths(snap, "C1", "L1", 3, DefaultPathPolicy())
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, []string{"C1", "L1"}, r.Path)
	assert.Equal(t, 1, r.Length)
	assert.GreaterOrEqual(t, r.Score, 90)
	assert.Equal(t, "1–2 weeks", r.EstimatedTimeline)
	require.Len(t, r.IntermediateConnections, 1)
	assert.Equal(t, "C1", r.IntermediateConnections[0].From)
	assert.Equal(t, "L1", r.IntermediateConnections[0].To)
	assert.Equal(t, 9, r.IntermediateConnections[0].RelationshipStrength)
	assert.Len(t, r.Recommendations, 1)
}

func TestFindTopPaths_SelfPath(t *testing.T) {
	snap := quickSnapshot(t, []string{"A", "B"}, [][2]string{{"A", "B"}}, 5)
	for _, k := range []int{1, 3} {
		results, err := FindTopPaths(snap, "A", "A", k, DefaultPathPolicy())
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, []string{"A"}, results[0].Path)
		assert.Equal(t, 0, results[0].Length)
		assert.Equal(t, 100, results[0].Score)
		assert.Empty(t, results[0].IntermediateConnections)
	}
}

func TestFindTopPaths_Errors(t *testing.T) {
	snap := quickSnapshot(t, []string{"A", "B"}, [][2]string{{"A", "B"}}, 5)

	_, err := FindTopPaths(snap, "A", "B", 0, DefaultPathPolicy())
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = FindTopPaths(snap, "A", "B", -2, DefaultPathPolicy())
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = FindTopPaths(snap, "nope", "B", 3, DefaultPathPolicy())
	var nf *NodeNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "nope", nf.ID)
	assert.True(t, errors.Is(err, ErrNodeNotFound))

	_, err = FindTopPaths(snap, "A", "gone", 3, DefaultPathPolicy())
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "gone", nf.ID)
}

func TestFindTopPaths_Disconnected(t *testing.T) {
	snap := quickSnapshot(t, []string{"A", "B", "C", "D"}, [][2]string{{"A", "B"}, {"C", "D"}}, 5)
	results, err := FindTopPaths(snap, "A", "D", 3, DefaultPathPolicy())
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestFindTopPaths_EnumeratesDistinctSimplePaths(t *testing.T) {
	snap := weightedSnapshot(t, nil, []Edge{
		w("S", "T", 4),
		w("S", "A", 8), w("A", "T", 8),
		w("S", "B", 6), w("B", "T", 7),
		w("S", "C", 9), w("C", "D", 9), w("D", "T", 9),
	})

	all, err := FindTopPaths(snap, "S", "T", 10, DefaultPathPolicy())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"S-T", "S-A-T", "S-B-T", "S-C-D-T"}, pathIDs(all))

	seen := map[string]bool{}
	for _, r := range all {
		key := strings.Join(r.Path, "-")
		assert.False(t, seen[key], "duplicate path %s", key)
		seen[key] = true

		assert.Equal(t, "S", r.Path[0])
		assert.Equal(t, "T", r.Path[len(r.Path)-1])
		visited := map[string]bool{}
		for _, id := range r.Path {
			assert.False(t, visited[id], "path %s revisits %s", key, id)
			visited[id] = true
		}
		assert.Equal(t, len(r.Path)-1, r.Length)
		assert.Len(t, r.IntermediateConnections, r.Length)
		assert.Len(t, r.Recommendations, r.Length)
		assert.GreaterOrEqual(t, r.Score, 0)
		assert.LessOrEqual(t, r.Score, 100)
	}
	for i := 1; i < len(all); i++ {
		assert.LessOrEqual(t, all[i-1].Cost, all[i].Cost)
	}

	top2, err := FindTopPaths(snap, "S", "T", 2, DefaultPathPolicy())
	require.NoError(t, err)
	// S-C-D-T costs 6, S-A-T 6, S-B-T 9, S-T 7; weakest link 9 beats 8
	assert.Equal(t, []string{"S-C-D-T", "S-A-T"}, pathIDs(top2))
}

func TestFindTopPaths_TieBreaks(t *testing.T) {
	t.Run("stronger weakest link wins", func(t *testing.T) {
		snap := weightedSnapshot(t, nil, []Edge{
			w("S", "A", 9), w("A", "T", 1),
			w("S", "B", 5), w("B", "T", 5),
		})
		results, err := FindTopPaths(snap, "S", "T", 2, DefaultPathPolicy())
		require.NoError(t, err)
		assert.Equal(t, []string{"S-B-T", "S-A-T"}, pathIDs(results))
		assert.Equal(t, results[0].Cost, results[1].Cost)

		first, err := FindTopPaths(snap, "S", "T", 1, DefaultPathPolicy())
		require.NoError(t, err)
		assert.Equal(t, []string{"S-B-T"}, pathIDs(first))
	})

	t.Run("fewer hops wins", func(t *testing.T) {
		snap := weightedSnapshot(t, nil, []Edge{
			w("S", "A", 2), w("A", "B", 8), w("B", "T", 8),
			w("S", "Z", 2), w("Z", "T", 5),
		})
		results, err := FindTopPaths(snap, "S", "T", 1, DefaultPathPolicy())
		require.NoError(t, err)
		assert.Equal(t, []string{"S-Z-T"}, pathIDs(results))
	})

	t.Run("lexicographic ids", func(t *testing.T) {
		snap := weightedSnapshot(t, nil, []Edge{
			w("S", "Y", 5), w("Y", "T", 5),
			w("S", "X", 5), w("X", "T", 5),
		})
		results, err := FindTopPaths(snap, "S", "T", 1, DefaultPathPolicy())
		require.NoError(t, err)
		assert.Equal(t, []string{"S-X-T"}, pathIDs(results))
	})
}

func TestFindTopPaths_ParallelEdgesCollapse(t *testing.T) {
	snap := weightedSnapshot(t, nil, []Edge{
		{ID: "weak", Source: "X", Target: "Y", Weight: 3, Sentiment: SentimentPositive},
		{ID: "strong", Source: "Y", Target: "X", Weight: 9, Sentiment: SentimentPositive},
	})
	results, err := FindTopPaths(snap, "X", "Y", 3, DefaultPathPolicy())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "strong", results[0].IntermediateConnections[0].EdgeID)
	assert.Equal(t, 9, results[0].WeakestLink)
}

func TestFindTopPaths_NegativeEdgePenalized(t *testing.T) {
	build := func(typ string, sentiment Sentiment) PathResult {
		snap := weightedSnapshot(t, map[string]float64{"M": 7}, []Edge{
			w("A", "M", 8),
			{Source: "M", Target: "B", Type: typ, Weight: 8, Sentiment: sentiment},
		})
		results, err := FindTopPaths(snap, "A", "B", 1, DefaultPathPolicy())
		require.NoError(t, err)
		require.Len(t, results, 1)
		return results[0]
	}
	friendly := build(EdgeSupport, SentimentPositive)
	hostile := build(EdgeOppose, SentimentPositive)

	assert.Equal(t, friendly.Score-15, hostile.Score)
	assert.Equal(t, SentimentNegative, hostile.IntermediateConnections[1].Sentiment)
	assert.Contains(t, hostile.Recommendations[1], "Neutralize")
}

func TestFindTopPaths_WeakLinkChainScoresLower(t *testing.T) {
	score := func(second int) int {
		snap := weightedSnapshot(t, nil, []Edge{w("A", "B", 9), w("B", "C", second)})
		results, err := FindTopPaths(snap, "A", "C", 1, DefaultPathPolicy())
		require.NoError(t, err)
		require.Len(t, results, 1)
		return results[0].Score
	}
	assert.Less(t, score(3), score(9))
}

func TestScorePath_Properties(t *testing.T) {
	policy := DefaultPathPolicy()

	t.Run("direct strong beats any longer path with equal or weaker link", func(t *testing.T) {
		for direct := StrongWeight; direct <= MaxWeight; direct++ {
			d := ScorePath(1, direct, 0, MaxInfluence, policy)
			for hops := 2; hops <= 6; hops++ {
				for weakest := MinWeight; weakest <= direct; weakest++ {
					longer := ScorePath(hops, weakest, 0, MaxInfluence, policy)
					assert.Greater(t, d, longer, "direct=%d hops=%d weakest=%d", direct, hops, weakest)
				}
			}
		}
	})

	t.Run("stronger weakest link never scores lower", func(t *testing.T) {
		for hops := 1; hops <= 5; hops++ {
			for _, inf := range []float64{0, 3.5, 10} {
				for neg := 0; neg <= 2; neg++ {
					prev := -1
					for weakest := MinWeight; weakest <= MaxWeight; weakest++ {
						s := ScorePath(hops, weakest, neg, inf, policy)
						assert.GreaterOrEqual(t, s, prev)
						prev = s
					}
				}
			}
		}
	})

	t.Run("bounded", func(t *testing.T) {
		assert.Equal(t, 0, ScorePath(6, 1, 5, 0, policy))
		assert.Equal(t, 100, ScorePath(1, 10, 0, 10, policy))
		assert.Equal(t, 100, ScorePath(0, 0, 0, 0, policy))
	})
}

func TestEstimateTimeline(t *testing.T) {
	tests := []struct {
		hops int
		want string
	}{
		{0, "immediate"},
		{1, "1–2 weeks"},
		{2, "3–4 weeks"},
		{3, "6+ weeks"},
		{7, "6+ weeks"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EstimateTimeline(tt.hops))
	}
}

// bruteForcePaths enumerates every simple path by DFS and orders them with betterPath
func bruteForcePaths(s *Snapshot, src, dst int) []candidate {
	var out []candidate
	onPath := make([]bool, len(s.nodes))
	var nodes, edges []int
	var walk func(u int)
	walk = func(u int) {
		if u == dst {
			out = append(out, s.newCandidate(append([]int{}, nodes...), append([]int{}, edges...)))
			return
		}
		for _, l := range s.links[u] {
			if onPath[l.to] {
				continue
			}
			onPath[l.to] = true
			nodes = append(nodes, l.to)
			edges = append(edges, l.edge)
			walk(l.to)
			nodes = nodes[:len(nodes)-1]
			edges = edges[:len(edges)-1]
			onPath[l.to] = false
		}
	}
	onPath[src] = true
	nodes = []int{src}
	walk(src)
	sortCandidates(s, out)
	return out
}

func randomSnapshot(t *testing.T, seed int64, n int) *Snapshot {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	var nodes []Node
	for i := 0; i < n; i++ {
		nodes = append(nodes, testNode(fmt.Sprintf("n%02d", i), NodeStakeholder, float64(rng.Intn(11))))
	}
	var edges []Edge
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < 0.55 {
				edges = append(edges, w(nodes[i].ID, nodes[j].ID, 1+rng.Intn(10)))
			}
			if rng.Float64() < 0.1 {
				edges = append(edges, w(nodes[j].ID, nodes[i].ID, 1+rng.Intn(10)))
			}
		}
	}
	snap, err := NewSnapshot(nodes, edges)
	require.NoError(t, err)
	return snap
}

func TestFindTopPaths_MatchesExhaustiveSearch(t *testing.T) {
	policy := DefaultPathPolicy()
	policy.MaxTieExpansion = 100000

	for seed := int64(1); seed <= 12; seed++ {
		snap := randomSnapshot(t, seed, 7)
		for _, pair := range [][2]int{{0, 6}, {1, 4}, {2, 3}} {
			src, dst := pair[0], pair[1]
			expected := bruteForcePaths(snap, src, dst)
			for _, k := range []int{1, 3, 8} {
				results, err := FindTopPaths(snap, snap.nodes[src].ID, snap.nodes[dst].ID, k, policy)
				require.NoError(t, err)

				want := expected
				if len(want) > k {
					want = want[:k]
				}
				var wantIDs []string
				for _, c := range want {
					wantIDs = append(wantIDs, strings.Join(snap.describe(c, policy).Path, "-"))
				}
				assert.Equal(t, wantIDs, pathIDs(results), "seed=%d src=%d dst=%d k=%d", seed, src, dst, k)
			}
		}
	}
}
