package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"geodistance-service/internal/domain"
	"geodistance-service/internal/ports"
	"math"
)

// Plan a visiting order using a greedy nearest-neighbor algorithm.
//
// The algorithm minimizes the immediate leg distance at each step.
// It does not attempt global tour optimization (e.g., TSP solvers).
// Ties are broken by waypoint name, then input order, so results are deterministic.
func PlanTour(
	ctx context.Context,
	start domain.Waypoint,
	stops []domain.Waypoint,
	provider ports.DistanceProvider,
	returnToStart bool,
) (*domain.Tour, error) {
	if provider == nil {
		return nil, errors.New("plan tour: distance provider must be non-nil")
	}

	tour := &domain.Tour{
		Start:         start,
		Stops:         []domain.TourStop{},
		ReturnToStart: returnToStart,
	}

	if len(stops) == 0 {
		return tour, nil
	}

	remaining := make([]int, len(stops))
	for i := range stops {
		remaining[i] = i
	}

	current := start.Coords
	for len(remaining) > 0 {
		targets := make([]domain.Coordinates, 0, len(remaining))
		for _, i := range remaining {
			targets = append(targets, stops[i].Coords)
		}

		results, err := legDistances(ctx, provider, current, targets)
		if err != nil {
			return nil, fmt.Errorf("plan tour: %w", err)
		}

		best := -1
		bestMeters := math.Inf(1)

		// Select next stop by minimum leg distance (greedy step).
		for k, i := range remaining {
			meters := results[k].DistanceMeters
			if math.IsNaN(meters) || math.IsInf(meters, 0) {
				return nil, fmt.Errorf("plan tour: non-finite distance to %q", stops[i].Name)
			}
			if best == -1 || meters < bestMeters ||
				(meters == bestMeters && cmp.Or(cmp.Compare(stops[i].Name, stops[remaining[best]].Name), cmp.Compare(i, remaining[best])) < 0) {
				best = k
				bestMeters = meters
			}
		}

		if best == -1 {
			return nil, errors.New("plan tour: failed to select next stop")
		}

		next := stops[remaining[best]]
		tour.Stops = append(tour.Stops, domain.TourStop{Waypoint: next, LegMeters: bestMeters})
		tour.TotalDistanceMeters += bestMeters

		remaining = append(remaining[:best], remaining[best+1:]...)
		current = next.Coords
	}

	// Optionally includes the closing leg back to the start.
	if returnToStart {
		back, err := provider.GetDistance(ctx, current, start.Coords)
		if err != nil {
			return nil, fmt.Errorf("plan tour: get distance return leg to %q: %w", start.Name, err)
		}
		if math.IsNaN(back.DistanceMeters) || math.IsInf(back.DistanceMeters, 0) {
			return nil, fmt.Errorf("plan tour: non-finite return leg to %q", start.Name)
		}

		tour.ReturnLegMeters = back.DistanceMeters
		tour.TotalDistanceMeters += back.DistanceMeters
	}

	return tour, nil
}

// legDistances prefers batched lookups when the provider supports them.
func legDistances(
	ctx context.Context,
	provider ports.DistanceProvider,
	from domain.Coordinates,
	to []domain.Coordinates,
) ([]ports.DistanceResult, error) {
	if mp, ok := provider.(ports.DistanceMatrixProvider); ok {
		results, err := mp.GetDistances(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("get distances matrix from %v: %w", from, err)
		}
		if len(results) != len(to) {
			return nil, fmt.Errorf("matrix returned %d results for %d destinations", len(results), len(to))
		}
		return results, nil
	}

	results := make([]ports.DistanceResult, 0, len(to))
	for _, c := range to {
		r, err := provider.GetDistance(ctx, from, c)
		if err != nil {
			return nil, fmt.Errorf("get distance from %v to %v: %w", from, c, err)
		}
		results = append(results, r)
	}

	return results, nil
}
