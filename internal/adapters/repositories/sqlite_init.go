package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createWaysQuery := `
	CREATE TABLE IF NOT EXISTS ways (
		way_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL
	);
	`

	createWayNodesQuery := `
	CREATE TABLE IF NOT EXISTS way_nodes (
        way_id INTEGER NOT NULL REFERENCES ways(way_id) ON DELETE CASCADE,
        seq INTEGER NOT NULL,
        node_id INTEGER NOT NULL,
        lon REAL NOT NULL,
        lat REAL NOT NULL,
        PRIMARY KEY (way_id, seq)
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_way_nodes_node_id
    ON way_nodes(node_id);
	`

	statements := []string{
		createWaysQuery,
		createWayNodesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the database with way data from a JSON file.
// Existing ways with the same id are replaced, including their nodes.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	rows, err := LoadSeeds(jsonPath)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed ways: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	wayStmt, err := tx.PrepareContext(ctx, `
	INSERT OR REPLACE INTO ways (
		way_id,
		name
	)
	VALUES (?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed ways: prepare way insert: %w", err)
	}
	defer wayStmt.Close()

	clearStmt, err := tx.PrepareContext(ctx, `DELETE FROM way_nodes WHERE way_id = ?;`)
	if err != nil {
		return fmt.Errorf("seed ways: prepare node delete: %w", err)
	}
	defer clearStmt.Close()

	nodeStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO way_nodes (
        way_id,
        seq,
        node_id,
        lon,
        lat
    )
    VALUES (?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed ways: prepare node insert: %w", err)
	}
	defer nodeStmt.Close()

	for _, w := range rows {
		if _, err := wayStmt.ExecContext(ctx, w.WayID, w.Name); err != nil {
			return fmt.Errorf("seed ways: insert way_id=%d: %w", w.WayID, err)
		}
		if _, err := clearStmt.ExecContext(ctx, w.WayID); err != nil {
			return fmt.Errorf("seed ways: clear nodes way_id=%d: %w", w.WayID, err)
		}
		for seq, n := range w.Nodes {
			if _, err := nodeStmt.ExecContext(ctx, w.WayID, seq, n.NodeID, n.Lon, n.Lat); err != nil {
				return fmt.Errorf("seed ways: insert node way_id=%d seq=%d: %w", w.WayID, seq, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed ways: commit tx: %w", err)
	}

	return nil
}
