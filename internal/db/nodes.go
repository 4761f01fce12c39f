package db

// scanNode scans a row into a Node. The row must have all 6 columns in standard order.
func scanNode(scanner interface{ Scan(dest ...any) error }) (Node, error) {
	var n Node
	err := scanner.Scan(
		&n.ID, &n.NodeType, &n.Label, &n.InfluenceScore, &n.LastUpdated, &n.Metadata,
	)
	return n, err
}

// AllNodes returns all nodes ordered by id
func (d *DB) AllNodes() ([]Node, error) {
	rows, err := d.conn.Query(`
		SELECT id, type, label, influence_score, last_updated, metadata
		FROM nodes ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nodes []Node
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, rows.Err()
}

// GetNode returns a single node by ID
func (d *DB) GetNode(id string) (*Node, error) {
	row := d.conn.QueryRow(`
		SELECT id, type, label, influence_score, last_updated, metadata
		FROM nodes WHERE id = ?
	`, id)

	n, err := scanNode(row)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// CountNodes returns the number of rows in the nodes table
func (d *DB) CountNodes() (int, error) {
	var count int
	err := d.conn.QueryRow("SELECT COUNT(*) FROM nodes").Scan(&count)
	return count, err
}
