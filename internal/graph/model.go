package graph

import "time"

// NodeType identifies what kind of entity a node is
type NodeType string

const (
	NodeBill        NodeType = "bill"
	NodeLegislator  NodeType = "legislator"
	NodeClient      NodeType = "client"
	NodeCommittee   NodeType = "committee"
	NodeIssue       NodeType = "issue"
	NodeStakeholder NodeType = "stakeholder"
	NodeStaff       NodeType = "staff"
)

// NodeTypes lists every valid node type in display order
var NodeTypes = []NodeType{
	NodeBill, NodeLegislator, NodeClient, NodeCommittee,
	NodeIssue, NodeStakeholder, NodeStaff,
}

// Valid reports whether t is one of the known node types
func (t NodeType) Valid() bool {
	for _, nt := range NodeTypes {
		if nt == t {
			return true
		}
	}
	return false
}

// Sentiment is the tone of a relationship
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Edge types with fixed meaning. Other strings are allowed and treated as plain relationships.
const (
	EdgeSponsor = "sponsor"
	EdgeSupport = "support"
	EdgeOppose  = "oppose"
	EdgeNeutral = "neutral"
)

const (
	// StrongWeight is the lowest weight counted as a strong connection
	StrongWeight = 8
	MinWeight    = 1
	MaxWeight    = 10
	MaxInfluence = 10.0
)

// Node is an entity in the stakeholder graph
type Node struct {
	ID             string      `json:"id"`
	Type           NodeType    `json:"type"`
	Label          string      `json:"label"`
	InfluenceScore float64     `json:"influenceScore"`
	LastUpdated    time.Time   `json:"lastUpdated"`
	Details        NodeDetails `json:"details,omitempty"`
}

// Interaction is one logged touchpoint on a relationship
type Interaction struct {
	Type  string    `json:"type"`
	Date  time.Time `json:"date"`
	Notes string    `json:"notes,omitempty"`
}

// Edge is a relationship between two nodes
type Edge struct {
	ID                 string        `json:"id"`
	Source             string        `json:"source"`
	Target             string        `json:"target"`
	Type               string        `json:"type"`
	Weight             int           `json:"weight"`
	Sentiment          Sentiment     `json:"sentiment"`
	InteractionHistory []Interaction `json:"interactionHistory,omitempty"`
}

// IsStrong reports whether the edge weight is at or above StrongWeight
func (e Edge) IsStrong() bool { return e.Weight >= StrongWeight }

// EffectiveSentiment returns the sentiment used for scoring.
// An oppose edge is negative whatever sentiment was recorded.
func (e Edge) EffectiveSentiment() Sentiment {
	if e.Type == EdgeOppose {
		return SentimentNegative
	}
	switch e.Sentiment {
	case SentimentPositive, SentimentNegative:
		return e.Sentiment
	default:
		return SentimentNeutral
	}
}

// Other returns the endpoint of e that is not id
func (e Edge) Other(id string) string {
	if e.Source == id {
		return e.Target
	}
	return e.Source
}

// LastInteraction returns the most recent interaction, if any
func (e Edge) LastInteraction() (Interaction, bool) {
	if len(e.InteractionHistory) == 0 {
		return Interaction{}, false
	}
	last := e.InteractionHistory[0]
	for _, in := range e.InteractionHistory[1:] {
		if !in.Date.Before(last.Date) {
			last = in
		}
	}
	return last, true
}
