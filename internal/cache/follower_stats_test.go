package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T) (*FollowerStatsCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewFollowerStatsCache(client, time.Minute), mr
}

func TestFollowerStatsCacheRoundTrip(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	_, ok := c.Get(ctx, "u1")
	assert.False(t, ok)

	want := FollowerStats{Followers: 7, Following: 3}
	c.Set(ctx, "u1", want)
	got, ok := c.Get(ctx, "u1")
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestFollowerStatsCacheInvalidate(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	c.Set(ctx, "u1", FollowerStats{Followers: 1})
	c.Set(ctx, "u2", FollowerStats{Followers: 2})
	require.NoError(t, c.Invalidate(ctx, "u1", "u2"))

	_, ok := c.Get(ctx, "u1")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "u2")
	assert.False(t, ok)

	require.NoError(t, c.Invalidate(ctx))
}

func TestFollowerStatsCacheExpires(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	c.Set(ctx, "u1", FollowerStats{Followers: 5})
	mr.FastForward(2 * time.Minute)
	_, ok := c.Get(ctx, "u1")
	assert.False(t, ok)
}
