package graph

// unionFind implements union-find over node indices with path compression and union by rank
type unionFind struct {
	parent []int
	rank   []int
	size   []int
}

// newUnionFind creates a unionFind where each of n elements is its own component
func newUnionFind(n int) *unionFind {
	uf := &unionFind{
		parent: make([]int, n),
		rank:   make([]int, n),
		size:   make([]int, n),
	}
	for i := range uf.parent {
		uf.parent[i] = i
		uf.size[i] = 1
	}
	return uf
}

// find returns the root of the component containing x, with path compression
func (uf *unionFind) find(x int) int {
	root := x
	for uf.parent[root] != root {
		root = uf.parent[root]
	}
	for uf.parent[x] != root {
		next := uf.parent[x]
		uf.parent[x] = root
		x = next
	}
	return root
}

// union merges the components containing a and b. Returns true if they were separate.
func (uf *unionFind) union(a, b int) bool {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return false
	}
	if uf.rank[ra] < uf.rank[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	uf.size[ra] += uf.size[rb]
	if uf.rank[ra] == uf.rank[rb] {
		uf.rank[ra]++
	}
	return true
}

// count returns the number of distinct components
func (uf *unionFind) count() int {
	n := 0
	for i := range uf.parent {
		if uf.find(i) == i {
			n++
		}
	}
	return n
}

// components builds a unionFind over the snapshot's traversable links
func (s *Snapshot) components() *unionFind {
	uf := newUnionFind(len(s.nodes))
	for u, ls := range s.links {
		for _, l := range ls {
			if u < l.to {
				uf.union(u, l.to)
			}
		}
	}
	return uf
}
