package ports

import (
	"context"
	"geodistance-service/internal/domain"
)

// Distance between two locations.
type DistanceResult struct {
	DistanceMeters float64
}

// Contract for retrieving the distance between locations.
type DistanceProvider interface {
	// Return the distance between two locations.
	GetDistance(ctx context.Context, from, to domain.Coordinates) (DistanceResult, error)
}
