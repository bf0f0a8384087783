package services

import (
	"context"
	"errors"
	"fmt"
	"geodistance-service/internal/domain"
	"geodistance-service/internal/geo/haversine"
	"geodistance-service/internal/platform/obs"
	"geodistance-service/internal/ports"
	"math"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentLoads bounds parallel GetWay calls against the repository.
const maxConcurrentLoads = 5

type WayLengthResult struct {
	WayID        int64
	Name         string
	LengthMeters float64
	Cached       bool
}

// WayLength returns the length of a single stored way, consulting the
// cache first when one is configured. cache may be nil.
func WayLength(
	ctx context.Context,
	wayID int64,
	repo ports.WayRepository,
	cache ports.LengthCache,
) (_ WayLengthResult, err error) {
	defer obs.Time(ctx, "services.WayLength")(&err)

	if repo == nil {
		return WayLengthResult{}, errors.New("way length: repository must be non-nil")
	}

	if cache != nil {
		hits, err := cache.GetMany(ctx, []int64{wayID})
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Int64("way_id", wayID).Msg("length cache read failed")
		} else if meters, ok := hits[wayID]; ok {
			return WayLengthResult{WayID: wayID, LengthMeters: meters, Cached: true}, nil
		}
	}

	way, err := repo.GetWay(ctx, wayID)
	if err != nil {
		return WayLengthResult{}, fmt.Errorf("way length: %w", err)
	}

	res := measure(way)
	storeLengths(ctx, cache, map[int64]float64{res.WayID: res.LengthMeters})

	return res, nil
}

// WayLengths returns the length of every stored way, ordered by way id.
// Cache hits skip loading nodes; misses are loaded concurrently and the
// first load failure cancels the rest.
func WayLengths(
	ctx context.Context,
	repo ports.WayRepository,
	cache ports.LengthCache,
) (_ []WayLengthResult, err error) {
	defer obs.Time(ctx, "services.WayLengths")(&err)

	if repo == nil {
		return nil, errors.New("way lengths: repository must be non-nil")
	}

	ways, err := repo.ListWays(ctx)
	if err != nil {
		return nil, fmt.Errorf("way lengths: list ways: %w", err)
	}

	if len(ways) == 0 {
		return []WayLengthResult{}, nil
	}

	ids := make([]int64, 0, len(ways))
	for _, w := range ways {
		ids = append(ids, w.WayID)
	}

	hits := map[int64]float64{}
	if cache != nil {
		got, err := cache.GetMany(ctx, ids)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("length cache read failed")
		} else {
			hits = got
		}
	}

	out := make([]WayLengthResult, len(ways))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)

	for i, w := range ways {
		if meters, ok := hits[w.WayID]; ok {
			out[i] = WayLengthResult{WayID: w.WayID, Name: w.Name, LengthMeters: meters, Cached: true}
			continue
		}

		g.Go(func() error {
			full, err := repo.GetWay(gctx, w.WayID)
			if err != nil {
				return fmt.Errorf("way lengths: load way %d: %w", w.WayID, err)
			}
			out[i] = measure(full)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	fresh := make(map[int64]float64)
	for _, r := range out {
		if !r.Cached {
			fresh[r.WayID] = r.LengthMeters
		}
	}
	storeLengths(ctx, cache, fresh)

	return out, nil
}

func measure(way *domain.Way) WayLengthResult {
	return WayLengthResult{
		WayID:        way.WayID,
		Name:         way.Name,
		LengthMeters: haversine.PathDistance(way.Points()),
	}
}

// Cache writes are best effort; failures are logged, never returned.
// Non-finite lengths are never cached.
func storeLengths(ctx context.Context, cache ports.LengthCache, lengths map[int64]float64) {
	if cache == nil {
		return
	}

	for id, meters := range lengths {
		if math.IsNaN(meters) || math.IsInf(meters, 0) {
			delete(lengths, id)
		}
	}
	if len(lengths) == 0 {
		return
	}

	if err := cache.PutMany(ctx, lengths); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Int("count", len(lengths)).Msg("length cache write failed")
	}
}
