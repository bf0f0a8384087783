package repositories

import (
	"context"
	"database/sql"
	"errors"
	"geodistance-service/internal/domain"
	"geodistance-service/internal/platform/obs"
)

const (
	pgListWaysQuery = `
	SELECT way_id, name
    FROM ways
    ORDER BY way_id;
	`

	pgWayQuery = `SELECT name FROM ways WHERE way_id = $1;`

	pgWayNodesQuery = `
	SELECT node_id, lon, lat
    FROM way_nodes
    WHERE way_id = $1
    ORDER BY seq;
	`
)

// SQLWayRepository is the Postgres-backed WayRepository, used through
// the pgx stdlib driver.
type SQLWayRepository struct{ DB *sql.DB }

func NewSQLWayRepository(db *sql.DB) *SQLWayRepository {
	return &SQLWayRepository{DB: db}
}

func (s *SQLWayRepository) ListWays(ctx context.Context) (_ []*domain.Way, err error) {
	defer obs.Time(ctx, "postgres.ListWays")(&err)

	if s.DB == nil {
		return nil, errors.New("sql way repository: DB is nil")
	}

	return listWays(ctx, s.DB, pgListWaysQuery)
}

func (s *SQLWayRepository) GetWay(ctx context.Context, wayID int64) (_ *domain.Way, err error) {
	defer obs.Time(ctx, "postgres.GetWay")(&err)

	if s.DB == nil {
		return nil, errors.New("sql way repository: DB is nil")
	}

	return getWay(ctx, s.DB, wayID, pgWayQuery, pgWayNodesQuery)
}
