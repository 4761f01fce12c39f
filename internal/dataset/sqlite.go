package dataset

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"capitol/constellation/internal/db"
)

// FromDB reads the nodes, edges and interactions tables into a Document
func FromDB(d *db.DB) (*Document, error) {
	nodes, err := d.AllNodes()
	if err != nil {
		return nil, errors.Wrap(err, "loading nodes")
	}
	edges, err := d.AllEdges()
	if err != nil {
		return nil, errors.Wrap(err, "loading edges")
	}
	interactions, err := d.InteractionsByEdge()
	if err != nil {
		return nil, errors.Wrap(err, "loading interactions")
	}

	doc := &Document{
		Nodes: make([]NodeRecord, 0, len(nodes)),
		Edges: make([]EdgeRecord, 0, len(edges)),
	}
	for _, n := range nodes {
		r := NodeRecord{
			ID:             n.ID,
			Type:           n.NodeType,
			Label:          n.Label,
			InfluenceScore: n.InfluenceScore,
			LastUpdated:    Timestamp{Time: time.UnixMilli(n.LastUpdated).UTC()},
		}
		if n.Metadata != nil && *n.Metadata != "" {
			if err := json.Unmarshal([]byte(*n.Metadata), &r.Metadata); err != nil {
				return nil, errors.Wrapf(err, "node %s metadata", n.ID)
			}
		}
		doc.Nodes = append(doc.Nodes, r)
	}
	for _, e := range edges {
		r := EdgeRecord{
			ID:        e.ID,
			Source:    e.SourceID,
			Target:    e.TargetID,
			Type:      e.EdgeType,
			Weight:    e.Weight,
			Sentiment: e.Sentiment,
		}
		for _, in := range interactions[e.ID] {
			rec := InteractionRecord{Type: in.Type, Date: Timestamp{Time: time.UnixMilli(in.Date).UTC()}}
			if in.Notes != nil {
				rec.Notes = *in.Notes
			}
			r.InteractionHistory = append(r.InteractionHistory, rec)
		}
		doc.Edges = append(doc.Edges, r)
	}
	return doc, nil
}

// Save writes doc into d, replacing what was stored. Edges without an id are
// named by graph.AssignEdgeIDs so interactions can reference them.
func Save(d *db.DB, doc *Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	ids, err := doc.edgeIDs()
	if err != nil {
		return err
	}

	nodes := make([]db.Node, 0, len(doc.Nodes))
	for _, r := range doc.Nodes {
		n := db.Node{
			ID:             r.ID,
			NodeType:       r.Type,
			Label:          r.Label,
			InfluenceScore: r.InfluenceScore,
			LastUpdated:    r.LastUpdated.UnixMilli(),
		}
		if len(r.Metadata) > 0 {
			raw, err := json.Marshal(r.Metadata)
			if err != nil {
				return errors.Wrapf(err, "node %s metadata", r.ID)
			}
			s := string(raw)
			n.Metadata = &s
		}
		nodes = append(nodes, n)
	}

	var edges []db.Edge
	var interactions []db.Interaction
	for i, r := range doc.Edges {
		id := ids[i]
		sentiment := r.Sentiment
		if sentiment == "" {
			sentiment = "neutral"
		}
		edges = append(edges, db.Edge{
			ID: id, SourceID: r.Source, TargetID: r.Target, EdgeType: r.Type,
			Weight: r.Weight, Sentiment: sentiment, Position: i,
		})
		for _, in := range r.InteractionHistory {
			row := db.Interaction{EdgeID: id, Type: in.Type, Date: in.Date.UnixMilli()}
			if in.Notes != "" {
				notes := in.Notes
				row.Notes = &notes
			}
			interactions = append(interactions, row)
		}
	}

	return errors.Wrap(d.SaveGraph(nodes, edges, interactions), "saving network")
}
