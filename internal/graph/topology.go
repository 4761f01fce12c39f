package graph

// StrengthBucket is one bucket in the connection-strength histogram
type StrengthBucket struct {
	Label string `json:"label"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
	Count int    `json:"count"`
}

func defaultHistogram() []StrengthBucket {
	return []StrengthBucket{
		{Label: "1-3", Min: 1, Max: 3},
		{Label: "4-5", Min: 4, Max: 5},
		{Label: "6-7", Min: 6, Max: 7},
		{Label: "8-10", Min: StrongWeight, Max: MaxWeight},
	}
}

// strengthHistogram counts edges per weight bucket. Out-of-range weights land in the nearest bucket.
func strengthHistogram(edges []Edge) []StrengthBucket {
	h := defaultHistogram()
	for _, e := range edges {
		i := 0
		for i < len(h)-1 && e.Weight > h[i].Max {
			i++
		}
		h[i].Count++
	}
	return h
}

// density is edges over the n(n-1)/2 pairs of a simple undirected graph.
// Parallel edges can push the raw ratio past 1; it is clamped.
func density(nodes, edges int) float64 {
	if nodes < 2 {
		return 0
	}
	maxPossible := float64(nodes) * float64(nodes-1) / 2
	return clamp(float64(edges)/maxPossible, 0, 1)
}

// clusteringCoefficient averages the local coefficient over nodes with degree >= 2
func (s *Snapshot) clusteringCoefficient() float64 {
	n := len(s.nodes)
	if n == 0 {
		return 0
	}

	neighborSets := make([]map[int]bool, n)
	for u, ls := range s.links {
		set := make(map[int]bool, len(ls))
		for _, l := range ls {
			set[l.to] = true
		}
		neighborSets[u] = set
	}

	var sum float64
	qualifying := 0
	for _, ls := range s.links {
		k := len(ls)
		if k < 2 {
			continue
		}
		triangles := 0
		for i := 0; i < k; i++ {
			for j := i + 1; j < k; j++ {
				if neighborSets[ls[i].to][ls[j].to] {
					triangles++
				}
			}
		}
		possible := k * (k - 1) / 2
		sum += float64(triangles) / float64(possible)
		qualifying++
	}
	if qualifying == 0 {
		return 0
	}
	return sum / float64(qualifying)
}

// averagePathLength runs a BFS from every node and averages hop counts over
// reachable ordered pairs. Unreachable pairs are excluded.
func (s *Snapshot) averagePathLength() float64 {
	n := len(s.nodes)
	dist := make([]int, n)
	queue := make([]int, 0, n)

	var total, pairs int
	for start := 0; start < n; start++ {
		for i := range dist {
			dist[i] = -1
		}
		dist[start] = 0
		queue = append(queue[:0], start)
		for head := 0; head < len(queue); head++ {
			u := queue[head]
			for _, l := range s.links[u] {
				if dist[l.to] >= 0 {
					continue
				}
				dist[l.to] = dist[u] + 1
				total += dist[l.to]
				pairs++
				queue = append(queue, l.to)
			}
		}
	}
	if pairs == 0 {
		return 0
	}
	return float64(total) / float64(pairs)
}

// isolatedNodes returns the sorted ids of nodes with no traversable neighbor
func (s *Snapshot) isolatedNodes() []string {
	ids := []string{}
	for _, id := range s.NodeIDs() {
		if s.degree(s.index[id]) == 0 {
			ids = append(ids, id)
		}
	}
	return ids
}
