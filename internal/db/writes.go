package db

import "fmt"

// SaveGraph replaces the stored network with the given rows in one transaction.
func (d *DB) SaveGraph(nodes []Node, edges []Edge, interactions []Interaction) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{"DELETE FROM interactions", "DELETE FROM edges", "DELETE FROM nodes"} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("clearing tables: %w", err)
		}
	}

	for _, n := range nodes {
		_, err := tx.Exec(
			`INSERT INTO nodes (id, type, label, influence_score, last_updated, metadata) VALUES (?, ?, ?, ?, ?, ?)`,
			n.ID, n.NodeType, n.Label, n.InfluenceScore, n.LastUpdated, n.Metadata,
		)
		if err != nil {
			return fmt.Errorf("inserting node %s: %w", n.ID, err)
		}
	}
	for _, e := range edges {
		_, err := tx.Exec(
			`INSERT INTO edges (id, source_id, target_id, type, weight, sentiment, position) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.SourceID, e.TargetID, e.EdgeType, e.Weight, e.Sentiment, e.Position,
		)
		if err != nil {
			return fmt.Errorf("inserting edge %s: %w", e.ID, err)
		}
	}
	for _, in := range interactions {
		_, err := tx.Exec(
			`INSERT INTO interactions (edge_id, type, date, notes) VALUES (?, ?, ?, ?)`,
			in.EdgeID, in.Type, in.Date, in.Notes,
		)
		if err != nil {
			return fmt.Errorf("inserting interaction for edge %s: %w", in.EdgeID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}
