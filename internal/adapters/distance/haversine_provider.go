package distance

import (
	"context"
	"geodistance-service/internal/domain"
	"geodistance-service/internal/geo/haversine"
	"geodistance-service/internal/ports"
)

// HaversineProvider implements DistanceMatrixProvider with great-circle
// distances. It does no I/O and is safe for concurrent use.
type HaversineProvider struct {
	// Clamp selects haversine.ClampedDistance over haversine.Distance.
	Clamp bool
}

func NewHaversineProvider(clamp bool) *HaversineProvider {
	return &HaversineProvider{Clamp: clamp}
}

func (h *HaversineProvider) distance(from, to domain.Coordinates) float64 {
	if h.Clamp {
		return haversine.ClampedDistance(from, to)
	}
	return haversine.Distance(from, to)
}

func (h *HaversineProvider) GetDistance(
	ctx context.Context,
	from domain.Coordinates,
	to domain.Coordinates,
) (ports.DistanceResult, error) {
	if err := ctx.Err(); err != nil {
		return ports.DistanceResult{}, err
	}

	return ports.DistanceResult{DistanceMeters: h.distance(from, to)}, nil
}

// Compute distances from a single origin to many destinations.
func (h *HaversineProvider) GetDistances(
	ctx context.Context,
	from domain.Coordinates,
	to []domain.Coordinates,
) ([]ports.DistanceResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]ports.DistanceResult, 0, len(to))
	for _, c := range to {
		out = append(out, ports.DistanceResult{DistanceMeters: h.distance(from, c)})
	}

	return out, nil
}
