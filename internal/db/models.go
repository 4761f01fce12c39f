package db

// Node represents a row in the nodes table
type Node struct {
	ID             string  `json:"id"`
	NodeType       string  `json:"type"` // "bill", "legislator", "client", ...
	Label          string  `json:"label"`
	InfluenceScore float64 `json:"influence_score"`
	LastUpdated    int64   `json:"last_updated"` // Unix millis
	Metadata       *string `json:"metadata"`     // JSON object of strings
}

// Edge represents a row in the edges table
type Edge struct {
	ID        string `json:"id"`
	SourceID  string `json:"source_id"`
	TargetID  string `json:"target_id"`
	EdgeType  string `json:"edge_type"` // "sponsor", "support", "oppose", "neutral"
	Weight    int    `json:"weight"`
	Sentiment string `json:"sentiment"`
	Position  int    `json:"position"` // input order, keeps parallel-edge ties stable
}

// Interaction represents a row in the interactions table
type Interaction struct {
	EdgeID string  `json:"edge_id"`
	Type   string  `json:"type"`
	Date   int64   `json:"date"` // Unix millis
	Notes  *string `json:"notes"`
}
