package ports

import (
	"context"
	"geodistance-service/internal/domain"
)

// Optional extension of DistanceProvider that supports batched lookups.
type DistanceMatrixProvider interface {
	DistanceProvider
	// Return distances from one origin to many destinations, in destination order.
	GetDistances(ctx context.Context, from domain.Coordinates, to []domain.Coordinates) ([]DistanceResult, error)
}
