package repository

import (
	"context"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis container in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := redis.ParseURL(uri)
	require.NoError(t, err)

	rdb := redis.NewClient(opts)
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, rdb.Ping(ctx).Err())
	return rdb
}

func TestRedisMatchRepository(t *testing.T) {
	rdb := startRedis(t)

	testMatchRepository(t, func(t *testing.T) MatchRepository {
		require.NoError(t, rdb.FlushDB(context.Background()).Err())
		return NewRedisMatchRepository(rdb)
	})
}

func TestRedisMatchRepository_SetsTTL(t *testing.T) {
	rdb := startRedis(t)
	ctx := context.Background()

	repo := NewRedisMatchRepository(rdb)
	require.NoError(t, repo.Create(ctx, "m1", "alice"))

	ttl, err := rdb.TTL(ctx, matchKey("m1")).Result()
	require.NoError(t, err)
	require.Greater(t, ttl, matchTTL/2)
}
