package graph

import (
	"sort"
	"strings"
	"unicode"
)

var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "in": true, "on": true,
	"at": true, "to": true, "for": true, "of": true, "is": true,
	"it": true, "and": true, "or": true, "with": true, "from": true,
	"by": true, "this": true, "that": true, "as": true, "be": true,
}

// SearchTerms preprocesses a free-text node reference.
// Splits on whitespace, removes stopwords and words < 3 chars, trims punctuation,
// lowercases.
func SearchTerms(query string) []string {
	var terms []string
	for _, w := range strings.Fields(query) {
		// Trim non-letter/digit chars from both ends
		trimmed := strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
		})
		if len(trimmed) < 3 {
			continue
		}
		lower := strings.ToLower(trimmed)
		if stopwords[lower] {
			continue
		}
		terms = append(terms, lower)
	}
	return terms
}

// NodesWithIDPrefix returns nodes whose id starts with prefix, sorted by id
func (s *Snapshot) NodesWithIDPrefix(prefix string) []Node {
	var out []Node
	for _, n := range s.nodes {
		if strings.HasPrefix(n.ID, prefix) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SearchLabels ranks nodes by how many query terms their label contains.
// Nodes matching no term are omitted. Ties order by id.
func (s *Snapshot) SearchLabels(query string) []Node {
	terms := SearchTerms(query)
	if len(terms) == 0 {
		return []Node{}
	}

	type hit struct {
		node  Node
		score int
	}
	var hits []hit
	for _, n := range s.nodes {
		label := strings.ToLower(n.Label)
		score := 0
		for _, t := range terms {
			if strings.Contains(label, t) {
				score++
			}
		}
		if score > 0 {
			hits = append(hits, hit{n, score})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].node.ID < hits[j].node.ID
	})

	out := make([]Node, len(hits))
	for i, h := range hits {
		out[i] = h.node
	}
	return out
}
