package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	repository "student-performance-dashboard/app/repository/redis"
)

func TestChartKey(t *testing.T) {
	assert.Equal(t, "chart:abc:subjects:A+:Female", repository.ChartKey("abc", "subjects", "A+", "Female"))
	assert.Equal(t, "chart:abc:grades::", repository.ChartKey("abc", "grades", "", ""))
}

func TestNoopCache(t *testing.T) {
	var c repository.ChartCache = repository.NoopCache{}

	require.NoError(t, c.Set(context.Background(), "k", []byte("png")))
	b, ok, err := c.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, b)
}

func unreachable(t *testing.T) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestChartCache(t *testing.T) {
	t.Run("Error: get on unreachable server", func(t *testing.T) {
		c := repository.NewChartCache(unreachable(t), time.Minute)

		b, ok, err := c.Get(context.Background(), "k")
		assert.Error(t, err)
		assert.False(t, ok)
		assert.Nil(t, b)
	})

	t.Run("Error: set on unreachable server", func(t *testing.T) {
		c := repository.NewChartCache(unreachable(t), time.Minute)

		err := c.Set(context.Background(), "k", []byte("png"))
		assert.Error(t, err)
	})
}
