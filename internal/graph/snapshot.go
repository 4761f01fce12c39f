package graph

import (
	"fmt"
	"sort"
	"time"
)

// Neighbor pairs an incident edge with the node on its other end
type Neighbor struct {
	Edge       Edge   `json:"edge"`
	NeighborID string `json:"neighborId"`
}

// link is one traversable connection in the simple undirected view
type link struct {
	to   int // node index
	edge int // edge index of the strongest edge between the pair
}

// Snapshot holds an immutable node/edge set with precomputed adjacency.
// Nodes and edges live in slices; adjacency is stored as index lists.
type Snapshot struct {
	nodes []Node
	edges []Edge
	index map[string]int
	inc   [][]int  // node -> incident edge indices (self-loops listed once)
	links [][]link // node -> simple undirected neighbors, sorted by neighbor id
}

// NewSnapshot builds a Snapshot from raw nodes and edges.
// It fails with a *DanglingEdgeError on the first edge whose endpoint is missing,
// and with an *InvalidArgumentError on duplicate ids or details of the wrong kind.
// Edges without an ID are named by AssignEdgeIDs.
func NewSnapshot(nodes []Node, edges []Edge) (*Snapshot, error) {
	index := make(map[string]int, len(nodes))
	ns := make([]Node, len(nodes))
	for i, n := range nodes {
		if n.ID == "" {
			return nil, &InvalidArgumentError{Name: "nodes", Reason: fmt.Sprintf("node #%d has an empty id", i)}
		}
		if _, dup := index[n.ID]; dup {
			return nil, &InvalidArgumentError{Name: "nodes", Reason: fmt.Sprintf("duplicate node id %q", n.ID)}
		}
		if n.Details != nil && n.Details.Kind() != n.Type {
			return nil, &InvalidArgumentError{Name: "nodes",
				Reason: fmt.Sprintf("node %q has type %s but %s details", n.ID, n.Type, n.Details.Kind())}
		}
		index[n.ID] = i
		ns[i] = n
	}

	ids, err := AssignEdgeIDs(edgeIDs(edges))
	if err != nil {
		return nil, err
	}
	es := make([]Edge, len(edges))
	for i, e := range edges {
		e.ID = ids[i]
		if _, ok := index[e.Source]; !ok {
			return nil, &DanglingEdgeError{Index: i, EdgeID: e.ID, Source: e.Source, Target: e.Target, Missing: e.Source}
		}
		if _, ok := index[e.Target]; !ok {
			return nil, &DanglingEdgeError{Index: i, EdgeID: e.ID, Source: e.Source, Target: e.Target, Missing: e.Target}
		}
		es[i] = e
	}

	return build(ns, es, index), nil
}

// SplitDangling separates edges whose endpoints all exist in nodes from those that don't.
// Callers that prefer dropping over aborting pass kept to NewSnapshot.
func SplitDangling(nodes []Node, edges []Edge) (kept []Edge, dangling []*DanglingEdgeError) {
	ids := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		ids[n.ID] = true
	}
	// On duplicate explicit ids the raw ids are kept and NewSnapshot reports the clash
	assigned, err := AssignEdgeIDs(edgeIDs(edges))
	if err != nil {
		assigned = edgeIDs(edges)
	}
	for i, e := range edges {
		id := assigned[i]
		switch {
		case !ids[e.Source]:
			dangling = append(dangling, &DanglingEdgeError{Index: i, EdgeID: id, Source: e.Source, Target: e.Target, Missing: e.Source})
		case !ids[e.Target]:
			dangling = append(dangling, &DanglingEdgeError{Index: i, EdgeID: id, Source: e.Source, Target: e.Target, Missing: e.Target})
		default:
			e.ID = id
			kept = append(kept, e)
		}
	}
	return kept, dangling
}

// AssignEdgeIDs returns the final id of every edge, in order. An empty id
// becomes "e<index>", or "e<index>-<n>" when another edge already uses that name.
// Two edges sharing an explicit id fail with an *InvalidArgumentError.
func AssignEdgeIDs(ids []string) ([]string, error) {
	taken := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if taken[id] {
			return nil, &InvalidArgumentError{Name: "edges", Reason: fmt.Sprintf("duplicate edge id %q", id)}
		}
		taken[id] = true
	}

	out := make([]string, len(ids))
	for i, id := range ids {
		if id == "" {
			id = fmt.Sprintf("e%d", i)
			for n := 2; taken[id]; n++ {
				id = fmt.Sprintf("e%d-%d", i, n)
			}
			taken[id] = true
		}
		out[i] = id
	}
	return out, nil
}

func edgeIDs(edges []Edge) []string {
	ids := make([]string, len(edges))
	for i, e := range edges {
		ids[i] = e.ID
	}
	return ids
}

func build(nodes []Node, edges []Edge, index map[string]int) *Snapshot {
	inc := make([][]int, len(nodes))
	best := make(map[[2]int]int)

	for i, e := range edges {
		u, v := index[e.Source], index[e.Target]
		inc[u] = append(inc[u], i)
		if u == v {
			continue
		}
		inc[v] = append(inc[v], i)

		key := [2]int{u, v}
		if u > v {
			key = [2]int{v, u}
		}
		if cur, ok := best[key]; !ok || strongerEdge(e, edges[cur]) {
			best[key] = i
		}
	}

	links := make([][]link, len(nodes))
	for key, ei := range best {
		links[key[0]] = append(links[key[0]], link{to: key[1], edge: ei})
		links[key[1]] = append(links[key[1]], link{to: key[0], edge: ei})
	}
	for u := range links {
		ls := links[u]
		sort.Slice(ls, func(i, j int) bool { return nodes[ls[i].to].ID < nodes[ls[j].to].ID })
	}

	return &Snapshot{nodes: nodes, edges: edges, index: index, inc: inc, links: links}
}

// strongerEdge reports whether a should represent a node pair instead of b.
// Ties on weight prefer a non-negative edge; full ties keep the earlier edge.
func strongerEdge(a, b Edge) bool {
	if a.Weight != b.Weight {
		return a.Weight > b.Weight
	}
	aNeg := a.EffectiveSentiment() == SentimentNegative
	bNeg := b.EffectiveSentiment() == SentimentNegative
	return !aNeg && bNeg
}

// Len returns the number of nodes
func (s *Snapshot) Len() int { return len(s.nodes) }

// Nodes returns a copy of all nodes in load order
func (s *Snapshot) Nodes() []Node {
	out := make([]Node, len(s.nodes))
	copy(out, s.nodes)
	return out
}

// Edges returns a copy of all edges in load order
func (s *Snapshot) Edges() []Edge {
	out := make([]Edge, len(s.edges))
	copy(out, s.edges)
	return out
}

// Node looks up a node by id
func (s *Snapshot) Node(id string) (Node, bool) {
	i, ok := s.index[id]
	if !ok {
		return Node{}, false
	}
	return s.nodes[i], true
}

// NodeIDs returns a sorted list of all node IDs (for deterministic output)
func (s *Snapshot) NodeIDs() []string {
	ids := make([]string, 0, len(s.nodes))
	for _, n := range s.nodes {
		ids = append(ids, n.ID)
	}
	sort.Strings(ids)
	return ids
}

// NeighborsOf lists every incident edge of id with the node on its far side.
// An isolated or unknown node yields an empty list.
func (s *Snapshot) NeighborsOf(id string) []Neighbor {
	i, ok := s.index[id]
	if !ok {
		return []Neighbor{}
	}
	out := make([]Neighbor, 0, len(s.inc[i]))
	for _, ei := range s.inc[i] {
		e := s.edges[ei]
		out = append(out, Neighbor{Edge: e, NeighborID: e.Other(id)})
	}
	return out
}

// ConnectionsOf returns the edges incident to id, strongest first.
// Equal weights keep load order.
func (s *Snapshot) ConnectionsOf(id string) []Edge {
	i, ok := s.index[id]
	if !ok {
		return []Edge{}
	}
	out := make([]Edge, 0, len(s.inc[i]))
	for _, ei := range s.inc[i] {
		out = append(out, s.edges[ei])
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Weight > out[b].Weight })
	return out
}

// degree is the number of distinct neighbors of node index u, self excluded
func (s *Snapshot) degree(u int) int { return len(s.links[u]) }

// FilterUpdatedSince returns a new snapshot containing only nodes updated at or after t.
// Edges survive when both endpoints do.
func (s *Snapshot) FilterUpdatedSince(t time.Time) *Snapshot {
	return s.subset(func(n Node) bool { return !n.LastUpdated.Before(t) })
}

// FilterTypes returns a new snapshot containing only nodes of the given types.
// No types means no filtering.
func (s *Snapshot) FilterTypes(types ...NodeType) *Snapshot {
	if len(types) == 0 {
		return s
	}
	allowed := make(map[NodeType]bool, len(types))
	for _, t := range types {
		allowed[t] = true
	}
	return s.subset(func(n Node) bool { return allowed[n.Type] })
}

func (s *Snapshot) subset(keep func(Node) bool) *Snapshot {
	var nodes []Node
	index := make(map[string]int)
	for _, n := range s.nodes {
		if keep(n) {
			index[n.ID] = len(nodes)
			nodes = append(nodes, n)
		}
	}
	var edges []Edge
	for _, e := range s.edges {
		_, okS := index[e.Source]
		_, okT := index[e.Target]
		if okS && okT {
			edges = append(edges, e)
		}
	}
	return build(nodes, edges, index)
}
