package graph

import "sort"

// KeyConnector is a node whose removal splits part of the network
type KeyConnector struct {
	ID     string   `json:"id"`
	Label  string   `json:"label"`
	Type   NodeType `json:"type"`
	Degree int      `json:"degree"`
}

// CriticalRelationship is an edge whose removal splits part of the network
type CriticalRelationship struct {
	EdgeID string `json:"edgeId"`
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

// keyConnectors finds articulation points and bridge edges with an iterative Tarjan
// walk over the simple undirected view.
func (s *Snapshot) keyConnectors() ([]KeyConnector, []CriticalRelationship) {
	n := len(s.nodes)
	if n == 0 {
		return []KeyConnector{}, []CriticalRelationship{}
	}

	disc := make([]int, n)
	low := make([]int, n)
	visited := make([]bool, n)
	isAP := make([]bool, n)
	var bridgeLinks []link
	counter := 1

	const noParent = -1

	type frame struct {
		node, parent, ni int
	}

	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}

		visited[start] = true
		disc[start] = counter
		low[start] = counter
		counter++

		stack := []frame{{start, noParent, 0}}
		rootChildren := 0

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			node := top.node

			if top.ni < len(s.links[node]) {
				child := s.links[node][top.ni].to
				top.ni++

				if child == top.parent {
					continue
				}
				if visited[child] {
					if disc[child] < low[node] {
						low[node] = disc[child]
					}
					continue
				}

				visited[child] = true
				disc[child] = counter
				low[child] = counter
				counter++
				if node == start {
					rootChildren++
				}
				stack = append(stack, frame{child, node, 0})
				continue
			}

			// Done with this node, pop and propagate
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				continue
			}
			pn := stack[len(stack)-1].node
			if low[node] < low[pn] {
				low[pn] = low[node]
			}
			if low[node] > disc[pn] {
				for _, l := range s.links[pn] {
					if l.to == node {
						bridgeLinks = append(bridgeLinks, l)
						break
					}
				}
			}
			if pn != start && low[node] >= disc[pn] {
				isAP[pn] = true
			}
		}

		if rootChildren >= 2 {
			isAP[start] = true
		}
	}

	aps := []KeyConnector{}
	for i := 0; i < n; i++ {
		if !isAP[i] {
			continue
		}
		node := s.nodes[i]
		aps = append(aps, KeyConnector{
			ID:     node.ID,
			Label:  node.Label,
			Type:   node.Type,
			Degree: s.degree(i),
		})
	}
	sort.Slice(aps, func(i, j int) bool {
		if aps[i].Degree != aps[j].Degree {
			return aps[i].Degree > aps[j].Degree
		}
		return aps[i].ID < aps[j].ID
	})

	critical := []CriticalRelationship{}
	for _, l := range bridgeLinks {
		e := s.edges[l.edge]
		critical = append(critical, CriticalRelationship{
			EdgeID: e.ID,
			Source: e.Source,
			Target: e.Target,
			Weight: e.Weight,
		})
	}
	sort.Slice(critical, func(i, j int) bool {
		if critical[i].Weight != critical[j].Weight {
			return critical[i].Weight > critical[j].Weight
		}
		return critical[i].EdgeID < critical[j].EdgeID
	})

	return aps, critical
}
