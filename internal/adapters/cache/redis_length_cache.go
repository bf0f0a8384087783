package cache

import (
	"context"
	"errors"
	"fmt"
	"geodistance-service/internal/platform/obs"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const lengthKeyPrefix = "way:length:"

// RedisLengthCache stores computed way lengths (meters) in Redis.
// Entries expire after TTL; a zero TTL keeps them until evicted.
type RedisLengthCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisLengthCache(client *redis.Client, ttl time.Duration) *RedisLengthCache {
	return &RedisLengthCache{Client: client, TTL: ttl}
}

func lengthKey(wayID int64) string {
	return lengthKeyPrefix + strconv.FormatInt(wayID, 10)
}

// Fetch cached lengths for the given way ids.
func (c *RedisLengthCache) GetMany(ctx context.Context, wayIDs []int64) (_ map[int64]float64, err error) {
	defer obs.Time(ctx, "length.cache.GetMany")(&err)

	if c.Client == nil {
		return nil, errors.New("length cache: client is nil")
	}

	if len(wayIDs) == 0 {
		return map[int64]float64{}, nil
	}

	seen := map[int64]struct{}{}
	uniq := make([]int64, 0, len(wayIDs))
	keys := make([]string, 0, len(wayIDs))
	for _, id := range wayIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
		keys = append(keys, lengthKey(id))
	}

	vals, err := c.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get length cache: mget: %w", err)
	}

	out := make(map[int64]float64, len(uniq))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}

		meters, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("get length cache: parse key %q: %w", keys[i], err)
		}
		out[uniq[i]] = meters
	}

	return out, nil
}

// Store many computed lengths in one round trip.
func (c *RedisLengthCache) PutMany(ctx context.Context, lengths map[int64]float64) error {
	if c.Client == nil {
		return errors.New("length cache: client is nil")
	}

	if len(lengths) == 0 {
		return nil
	}

	pipe := c.Client.TxPipeline()
	for id, meters := range lengths {
		pipe.Set(ctx, lengthKey(id), strconv.FormatFloat(meters, 'g', -1, 64), c.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert length cache: exec pipeline: %w", err)
	}

	return nil
}
