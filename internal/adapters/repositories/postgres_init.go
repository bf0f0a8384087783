package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const (
	pgUpsertWay = `
	INSERT INTO ways (way_id, name)
    VALUES ($1, $2)
	ON CONFLICT (way_id) DO UPDATE
	SET name = EXCLUDED.name;
	`

	pgDeleteWayNodes = `DELETE FROM way_nodes WHERE way_id = $1;`

	pgInsertWayNode = `
	INSERT INTO way_nodes (way_id, seq, node_id, lon, lat)
    VALUES ($1, $2, $3, $4, $5);
	`
)

// Initialize the Postgres database schema.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init postgres schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`
		CREATE TABLE IF NOT EXISTS ways (
			way_id BIGINT PRIMARY KEY,
			name TEXT NOT NULL
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS way_nodes (
			way_id BIGINT NOT NULL REFERENCES ways(way_id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			node_id BIGINT NOT NULL,
			lon DOUBLE PRECISION NOT NULL,
			lat DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (way_id, seq)
		);
		`,
		`
		CREATE INDEX IF NOT EXISTS idx_way_nodes_node_id
		ON way_nodes(node_id);
		`,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init postgres schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init postgres schema: commit tx: %w", err)
	}

	return nil
}

// Populate a Postgres database with way data from a JSON file.
func SeedPostgresFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	if db == nil {
		return errors.New("seed ways: DB is nil")
	}

	rows, err := LoadSeeds(jsonPath)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed ways: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	wayStmt, err := tx.PrepareContext(ctx, pgUpsertWay)
	if err != nil {
		return fmt.Errorf("seed ways: prepare way insert: %w", err)
	}
	defer wayStmt.Close()

	clearStmt, err := tx.PrepareContext(ctx, pgDeleteWayNodes)
	if err != nil {
		return fmt.Errorf("seed ways: prepare node delete: %w", err)
	}
	defer clearStmt.Close()

	nodeStmt, err := tx.PrepareContext(ctx, pgInsertWayNode)
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
