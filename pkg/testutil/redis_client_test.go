package testutil

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestMockRedisClientZRevRangeWithScores(t *testing.T) {
	ctx := context.Background()
	client := NewMockRedisClient()

	require.NoError(t, client.ZAdd(ctx, "board", redis.Z{Member: "alice", Score: 30}))
	require.NoError(t, client.ZAdd(ctx, "board", redis.Z{Member: "bob", Score: 20}))
	require.NoError(t, client.ZAdd(ctx, "board", redis.Z{Member: "carol", Score: 10}))

	members := func(zs []redis.Z) []string {
		names := make([]string, 0, len(zs))
		for _, z := range zs {
			names = append(names, z.Member.(string))
		}
		return names
	}

	zs, err := client.ZRevRangeWithScores(ctx, "board", 0, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"alice", "bob"}, members(zs))

	zs, err = client.ZRevRangeWithScores(ctx, "board", 1, 5)
	require.NoError(t, err)
	require.Equal(t, []string{"bob", "carol"}, members(zs))

	// The real client passes stop=offset+limit-1 to ZREVRANGE, so a
	// zero limit at offset zero covers the whole set while a zero limit
	// further in covers nothing.
	zs, err = client.ZRevRangeWithScores(ctx, "board", 0, 0)
	require.NoError(t, err)
	require.Equal(t, []string{"alice", "bob", "carol"}, members(zs))

	zs, err = client.ZRevRangeWithScores(ctx, "board", 1, 0)
	require.NoError(t, err)
	require.Empty(t, zs)

	zs, err = client.ZRevRangeWithScores(ctx, "board", 10, 5)
	require.NoError(t, err)
	require.Empty(t, zs)
}
