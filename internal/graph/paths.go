package graph

import (
	"container/heap"
	"fmt"
	"strconv"
	"strings"
)

// Connection describes one traversed edge of a path
type Connection struct {
	From                 string    `json:"from"`
	To                   string    `json:"to"`
	EdgeID               string    `json:"edgeId"`
	Context              string    `json:"context"`
	RelationshipStrength int       `json:"relationshipStrength"`
	Sentiment            Sentiment `json:"sentiment"`
}

// PathResult is one ranked route from source to target
type PathResult struct {
	Path                    []string     `json:"path"`
	Length                  int          `json:"length"`
	Score                   int          `json:"score"`
	EstimatedTimeline       string       `json:"estimatedTimeline"`
	IntermediateConnections []Connection `json:"intermediateConnections"`
	Recommendations         []string     `json:"recommendations"`
	Cost                    int          `json:"cost"`
	WeakestLink             int          `json:"weakestLink"`
}

// edgeCost maps weight 10 to 1 and weight 1 to 10, so stronger relationships are cheaper
func edgeCost(weight int) int {
	if weight < MinWeight {
		weight = MinWeight
	}
	if weight > MaxWeight {
		weight = MaxWeight
	}
	return MaxWeight + 1 - weight
}

// candidate is a complete path in index form
type candidate struct {
	nodes   []int
	edges   []int
	cost    int
	weakest int
	key     string
}

func (s *Snapshot) newCandidate(nodes, edges []int) candidate {
	c := candidate{nodes: nodes, edges: edges, weakest: MaxWeight}
	var b strings.Builder
	for i, n := range nodes {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(n))
	}
	c.key = b.String()
	for _, ei := range edges {
		w := s.edges[ei].Weight
		c.cost += edgeCost(w)
		if w < c.weakest {
			c.weakest = w
		}
	}
	return c
}

// betterPath orders candidates: lower cost, then stronger weakest link,
// then fewer hops, then lexicographic node ids.
func (s *Snapshot) betterPath(a, b candidate) bool {
	if a.cost != b.cost {
		return a.cost < b.cost
	}
	if a.weakest != b.weakest {
		return a.weakest > b.weakest
	}
	if len(a.nodes) != len(b.nodes) {
		return len(a.nodes) < len(b.nodes)
	}
	for i := range a.nodes {
		ai, bi := s.nodes[a.nodes[i]].ID, s.nodes[b.nodes[i]].ID
		if ai != bi {
			return ai < bi
		}
	}
	return false
}

// candidateHeap is a min-heap of candidates under betterPath
type candidateHeap struct {
	snap  *Snapshot
	items []candidate
}

func (h *candidateHeap) Len() int           { return len(h.items) }
func (h *candidateHeap) Less(i, j int) bool { return h.snap.betterPath(h.items[i], h.items[j]) }
func (h *candidateHeap) Swap(i, j int)      { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *candidateHeap) Push(x interface{}) { h.items = append(h.items, x.(candidate)) }
func (h *candidateHeap) Pop() interface{} {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}

// dijkstraEntry is a min-heap entry
type dijkstraEntry struct {
	distance int
	node     int
	id       string
}

// dijkstraHeap implements container/heap.Interface as a min-heap.
// Ties broken by node id (lexicographic) for deterministic output.
type dijkstraHeap []dijkstraEntry

func (h dijkstraHeap) Len() int { return len(h) }
func (h dijkstraHeap) Less(i, j int) bool {
	if h[i].distance != h[j].distance {
		return h[i].distance < h[j].distance
	}
	return h[i].id < h[j].id
}
func (h dijkstraHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *dijkstraHeap) Push(x interface{}) { *h = append(*h, x.(dijkstraEntry)) }
func (h *dijkstraHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func pairKey(u, v int) [2]int {
	if u > v {
		return [2]int{v, u}
	}
	return [2]int{u, v}
}

// shortestPath runs Dijkstra from src to dst, skipping blocked nodes and links.
// Returns node and edge index sequences, or ok=false when dst is unreachable.
func (s *Snapshot) shortestPath(src, dst int, blockedNodes []bool, blockedLinks map[[2]int]bool) (nodes, edges []int, ok bool) {
	n := len(s.nodes)
	dist := make([]int, n)
	prevNode := make([]int, n)
	prevEdge := make([]int, n)
	visited := make([]bool, n)
	for i := range dist {
		dist[i] = -1
		prevNode[i] = -1
	}
	dist[src] = 0

	h := &dijkstraHeap{{distance: 0, node: src, id: s.nodes[src].ID}}
	for h.Len() > 0 {
		entry := heap.Pop(h).(dijkstraEntry)
		u := entry.node
		if visited[u] {
			continue
		}
		visited[u] = true
		if u == dst {
			break
		}

		for _, l := range s.links[u] {
			v := l.to
			if visited[v] || (blockedNodes != nil && blockedNodes[v]) {
				continue
			}
			if blockedLinks[pairKey(u, v)] {
				continue
			}
			nd := dist[u] + edgeCost(s.edges[l.edge].Weight)
			if dist[v] < 0 || nd < dist[v] {
				dist[v] = nd
				prevNode[v] = u
				prevEdge[v] = l.edge
				heap.Push(h, dijkstraEntry{distance: nd, node: v, id: s.nodes[v].ID})
			}
		}
	}

	if !visited[dst] {
		return nil, nil, false
	}
	for cur := dst; cur != src; cur = prevNode[cur] {
		nodes = append(nodes, cur)
		edges = append(edges, prevEdge[cur])
	}
	nodes = append(nodes, src)
	reverseInts(nodes)
	reverseInts(edges)
	return nodes, edges, true
}

func reverseInts(xs []int) {
	for i, j := 0, len(xs)-1; i < j; i, j = i+1, j-1 {
		xs[i], xs[j] = xs[j], xs[i]
	}
}

// kShortest enumerates loopless paths with Yen's algorithm. It keeps going past k
// while candidates tie the k-th cost (up to maxTies extra) so that the final
// betterPath ordering is exact, then returns the best k.
func (s *Snapshot) kShortest(src, dst, k, maxTies int) []candidate {
	nodes, edges, ok := s.shortestPath(src, dst, nil, nil)
	if !ok {
		return nil
	}

	accepted := []candidate{s.newCandidate(nodes, edges)}
	seen := map[string]bool{accepted[0].key: true}
	pending := &candidateHeap{snap: s}

	for {
		prev := accepted[len(accepted)-1]
		for i := 0; i < len(prev.nodes)-1; i++ {
			spur := prev.nodes[i]
			root := prev.nodes[:i+1]

			blockedLinks := make(map[[2]int]bool)
			for _, p := range accepted {
				if len(p.nodes) > i+1 && equalInts(p.nodes[:i+1], root) {
					blockedLinks[pairKey(p.nodes[i], p.nodes[i+1])] = true
				}
			}
			blockedNodes := make([]bool, len(s.nodes))
			for _, r := range root[:i] {
				blockedNodes[r] = true
			}

			spurNodes, spurEdges, ok := s.shortestPath(spur, dst, blockedNodes, blockedLinks)
			if !ok {
				continue
			}
			full := append(append([]int{}, root[:i]...), spurNodes...)
			fullEdges := append(append([]int{}, prev.edges[:i]...), spurEdges...)
			c := s.newCandidate(full, fullEdges)
			if seen[c.key] {
				continue
			}
			seen[c.key] = true
			heap.Push(pending, c)
		}

		if pending.Len() == 0 {
			break
		}
		next := pending.items[0]
		if len(accepted) >= k {
			kth := accepted[k-1].cost
			if next.cost > kth || len(accepted)-k >= maxTies {
				break
			}
		}
		heap.Pop(pending)
		accepted = append(accepted, next)
	}

	sortCandidates(s, accepted)
	if len(accepted) > k {
		accepted = accepted[:k]
	}
	return accepted
}

func sortCandidates(s *Snapshot, cs []candidate) {
	// insertion sort: lists are short and mostly ordered already
	for i := 1; i < len(cs); i++ {
		for j := i; j > 0 && s.betterPath(cs[j], cs[j-1]); j-- {
			cs[j], cs[j-1] = cs[j-1], cs[j]
		}
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// FindTopPaths returns up to k distinct simple paths from source to target, best first.
// An empty list means no path exists. Unknown ids fail with *NodeNotFoundError and
// k <= 0 with *InvalidArgumentError. source == target yields one zero-length path scored 100.
func FindTopPaths(snap *Snapshot, source, target string, k int, policy PathPolicy) ([]PathResult, error) {
	if k <= 0 {
		return nil, &InvalidArgumentError{Name: "k", Reason: fmt.Sprintf("must be positive, got %d", k)}
	}
	src, ok := snap.index[source]
	if !ok {
		return nil, &NodeNotFoundError{ID: source}
	}
	dst, ok := snap.index[target]
	if !ok {
		return nil, &NodeNotFoundError{ID: target}
	}

	if src == dst {
		return []PathResult{{
			Path:                    []string{source},
			Score:                   100,
			EstimatedTimeline:       EstimateTimeline(0),
			IntermediateConnections: []Connection{},
			Recommendations:         []string{},
			WeakestLink:             0,
		}}, nil
	}

	uf := snap.components()
	if uf.find(src) != uf.find(dst) {
		return []PathResult{}, nil
	}

	cands := snap.kShortest(src, dst, k, policy.MaxTieExpansion)
	results := make([]PathResult, 0, len(cands))
	for _, c := range cands {
		results = append(results, snap.describe(c, policy))
	}
	return results, nil
}

// describe turns an index-form candidate into a scored, annotated PathResult
func (s *Snapshot) describe(c candidate, policy PathPolicy) PathResult {
	hops := len(c.edges)
	r := PathResult{
		Path:                    make([]string, len(c.nodes)),
		Length:                  hops,
		EstimatedTimeline:       EstimateTimeline(hops),
		IntermediateConnections: make([]Connection, 0, hops),
		Recommendations:         make([]string, 0, hops),
		Cost:                    c.cost,
		WeakestLink:             c.weakest,
	}
	for i, ni := range c.nodes {
		r.Path[i] = s.nodes[ni].ID
	}

	negatives := 0
	for i, ei := range c.edges {
		e := s.edges[ei]
		from, to := s.nodes[c.nodes[i]], s.nodes[c.nodes[i+1]]
		sentiment := e.EffectiveSentiment()
		if sentiment == SentimentNegative {
			negatives++
		}
		r.IntermediateConnections = append(r.IntermediateConnections, Connection{
			From:                 from.ID,
			To:                   to.ID,
			EdgeID:               e.ID,
			Context:              connectionContext(e),
			RelationshipStrength: e.Weight,
			Sentiment:            sentiment,
		})
		r.Recommendations = append(r.Recommendations, recommendation(from, to, e))
	}

	var influence float64
	intermediates := c.nodes[1 : len(c.nodes)-1]
	for _, ni := range intermediates {
		influence += s.nodes[ni].InfluenceScore
	}
	avgInfluence := MaxInfluence
	if len(intermediates) > 0 {
		avgInfluence = influence / float64(len(intermediates))
	}

	r.Score = ScorePath(hops, c.weakest, negatives, avgInfluence, policy)
	return r
}
