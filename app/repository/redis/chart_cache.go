package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ChartCache stores rendered chart images keyed by snapshot and filter.
type ChartCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, png []byte) error
}

type chartCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewChartCache(rdb *redis.Client, ttl time.Duration) ChartCache {
	return &chartCache{rdb: rdb, ttl: ttl}
}

func (c *chartCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c *chartCache) Set(ctx context.Context, key string, png []byte) error {
	return c.rdb.Set(ctx, key, png, c.ttl).Err()
}

// NoopCache is used when no Redis address is configured.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (NoopCache) Set(context.Context, string, []byte) error { return nil }

// ChartKey builds the cache key for one chart of one filtered view.
func ChartKey(snapshot, kind, grade, gender string) string {
	return fmt.Sprintf("chart:%s:%s:%s:%s", snapshot, kind, grade, gender)
}
