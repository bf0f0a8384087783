package ports

import (
	"context"
	"errors"
	"geodistance-service/internal/domain"
)

var ErrWayNotFound = errors.New("way not found")

// Port: a boundary for retrieving Way entities from a data source.
type WayRepository interface {
	// Retrieve all ways ordered by id. Nodes are not loaded.
	ListWays(ctx context.Context) ([]*domain.Way, error)
	// Retrieve one way with its nodes in traversal order.
	// Returns ErrWayNotFound when no such way exists.
	GetWay(ctx context.Context, wayID int64) (*domain.Way, error)
}
