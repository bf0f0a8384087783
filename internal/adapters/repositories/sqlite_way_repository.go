package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"geodistance-service/internal/domain"
	"geodistance-service/internal/platform/obs"
	"geodistance-service/internal/ports"
)

// SQLite-backed implementation of the WayRepository port.
type SqliteWayRepository struct{ DB *sql.DB }

func NewSqliteWayRepository(db *sql.DB) *SqliteWayRepository {
	return &SqliteWayRepository{DB: db}
}

// Return all ways stored in the database, without nodes.
func (s *SqliteWayRepository) ListWays(ctx context.Context) (_ []*domain.Way, err error) {
	defer obs.Time(ctx, "sqlite.ListWays")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite way repository: DB is nil")
	}

	query := `
	SELECT
		way_id,
		name
	FROM ways
	ORDER BY way_id;
	`
	return listWays(ctx, s.DB, query)
}

// Return a single way with its nodes in sequence order.
func (s *SqliteWayRepository) GetWay(ctx context.Context, wayID int64) (_ *domain.Way, err error) {
	defer obs.Time(ctx, "sqlite.GetWay")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite way repository: DB is nil")
	}

	return getWay(ctx, s.DB, wayID,
		`SELECT name FROM ways WHERE way_id = ?;`,
		`
		SELECT
			node_id,
			lon,
			lat
		FROM way_nodes
		WHERE way_id = ?
		ORDER BY seq;
		`,
	)
}

// listWays and getWay hold the scanning logic shared by the SQLite and
// Postgres repositories; only the query text differs between them.
func listWays(ctx context.Context, db *sql.DB, query string) ([]*domain.Way, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list ways: query ways table: %w", err)
	}
	defer rows.Close()

	ways := make([]*domain.Way, 0, 64)
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("list ways: scan row: %w", err)
		}
		ways = append(ways, domain.NewWay(id, name))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list ways: row iteration: %w", err)
	}

	return ways, nil
}

func getWay(ctx context.Context, db *sql.DB, wayID int64, wayQuery, nodesQuery string) (*domain.Way, error) {
	var name string
	err := db.QueryRowContext(ctx, wayQuery, wayID).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get way %d: %w", wayID, ports.ErrWayNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get way %d: query ways table: %w", wayID, err)
	}

	rows, err := db.QueryContext(ctx, nodesQuery, wayID)
	if err != nil {
		return nil, fmt.Errorf("get way %d: query way_nodes table: %w", wayID, err)
	}
	defer rows.Close()

	way := domain.NewWay(wayID, name)
	for rows.Next() {
		var n domain.Node
		if err := rows.Scan(&n.NodeID, &n.Coords.Lon, &n.Coords.Lat); err != nil {
			return nil, fmt.Errorf("get way %d: scan node: %w", wayID, err)
		}
		if err := way.AddNode(n); err != nil {
			return nil, fmt.Errorf("get way %d: %w", wayID, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get way %d: row iteration: %w", wayID, err)
	}

	return way, nil
}
