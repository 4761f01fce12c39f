package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Schema creates the stakeholder tables. Timestamps are Unix millis.
const Schema = `
CREATE TABLE IF NOT EXISTS nodes (
	id TEXT PRIMARY KEY,
	type TEXT NOT NULL,
	label TEXT NOT NULL,
	influence_score REAL NOT NULL DEFAULT 0,
	last_updated INTEGER NOT NULL,
	metadata TEXT
);
CREATE TABLE IF NOT EXISTS edges (
	id TEXT PRIMARY KEY,
	source_id TEXT NOT NULL,
	target_id TEXT NOT NULL,
	type TEXT NOT NULL,
	weight INTEGER NOT NULL,
	sentiment TEXT NOT NULL DEFAULT 'neutral',
	position INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS interactions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	edge_id TEXT NOT NULL REFERENCES edges(id) ON DELETE CASCADE,
	type TEXT NOT NULL,
	date INTEGER NOT NULL,
	notes TEXT
);
CREATE INDEX IF NOT EXISTS idx_interactions_edge ON interactions(edge_id, date);
`

// DB wraps a SQLite database connection
type DB struct {
	conn *sql.DB
	Path string
}

// OpenDB opens a SQLite database with WAL mode and foreign keys enabled
func OpenDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One connection: ":memory:" databases are per-connection
	conn.SetMaxOpenConns(1)

	// Enable WAL mode for concurrent reads
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	// Enable foreign keys
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	return &DB{conn: conn, Path: path}, nil
}

// Migrate creates any missing tables
func (d *DB) Migrate() error {
	if _, err := d.conn.Exec(Schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.conn.Close()
}

// Conn returns the underlying sql.DB for custom queries
func (d *DB) Conn() *sql.DB {
	return d.conn
}
