package ports

import "context"

// Cache of computed way lengths in meters, keyed by way id.
type LengthCache interface {
	// Return cached lengths; missing ids are absent from the map.
	GetMany(ctx context.Context, wayIDs []int64) (map[int64]float64, error)
	PutMany(ctx context.Context, lengths map[int64]float64) error
}
