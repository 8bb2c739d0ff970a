package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	cache "student-performance-dashboard/app/repository/redis"
	"student-performance-dashboard/config"
	"student-performance-dashboard/logger"
)

// ConnectChartCache returns a Redis-backed chart cache, or a no-op cache
// when REDIS_ADDR is empty. The returned close func is never nil.
func ConnectChartCache(ctx context.Context, cfg *config.Config) (cache.ChartCache, func() error, error) {
	if cfg.Redis.Addr == "" {
		return cache.NoopCache{}, func() error { return nil }, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.CacheTTL()).Msg("chart cache enabled")
	return cache.NewChartCache(rdb, cfg.CacheTTL()), rdb.Close, nil
}
