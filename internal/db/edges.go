package db

// scanEdge scans a row into an Edge. The row must have all 7 columns in standard order.
func scanEdge(scanner interface{ Scan(dest ...any) error }) (Edge, error) {
	var e Edge
	err := scanner.Scan(
		&e.ID, &e.SourceID, &e.TargetID, &e.EdgeType, &e.Weight, &e.Sentiment, &e.Position,
	)
	return e, err
}

// AllEdges returns all edges in input order
func (d *DB) AllEdges() ([]Edge, error) {
	rows, err := d.conn.Query(`
		SELECT id, source_id, target_id, type, weight, sentiment, position
		FROM edges ORDER BY position, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var edges []Edge
	for rows.Next() {
		e, err := scanEdge(rows)
		if err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// GetEdgesForNode returns all edges where the given node is source OR target.
func (d *DB) GetEdgesForNode(nodeID string) ([]Edge, error) {
	rows, err := d.conn.Query(`
		SELECT id, source_id, target_id, type, weight, sentiment, position
		FROM edges WHERE source_id = ? OR target_id = ?
		ORDER BY position, id
	`, nodeID, nodeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var edges []Edge
	for rows.Next() {
		e, err := scanEdge(rows)
		if err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// InteractionsByEdge returns every interaction grouped by edge id, oldest first
func (d *DB) InteractionsByEdge() (map[string][]Interaction, error) {
	rows, err := d.conn.Query(`
		SELECT edge_id, type, date, notes
		FROM interactions ORDER BY edge_id, date, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]Interaction)
	for rows.Next() {
		var in Interaction
		if err := rows.Scan(&in.EdgeID, &in.Type, &in.Date, &in.Notes); err != nil {
			return nil, err
		}
		out[in.EdgeID] = append(out[in.EdgeID], in)
	}
	return out, rows.Err()
}
