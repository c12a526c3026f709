package ratelimit

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisLimiter(t *testing.T) (*RedisLimiter, *miniredis.Miniredis) {
	t.Helper()
	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLimiter(client), server
}

func TestRedisAllowUntilLimit(t *testing.T) {
	l, _ := newRedisLimiter(t)
	ctx := context.Background()
	p := Policy{Window: time.Minute, MaxRequests: 2}

	d, err := l.Allow(ctx, "1.2.3.4", p)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Remaining)

	d, err = l.Allow(ctx, "1.2.3.4", p)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)

	d, err = l.Allow(ctx, "1.2.3.4", p)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
}

func TestRedisWindowExpires(t *testing.T) {
	l, server := newRedisLimiter(t)
	ctx := context.Background()
	p := Policy{Window: time.Minute, MaxRequests: 1}

	d, err := l.Allow(ctx, "1.2.3.4", p)
	require.NoError(t, err)
	require.True(t, d.Allowed)
	d, err = l.Allow(ctx, "1.2.3.4", p)
	require.NoError(t, err)
	require.False(t, d.Allowed)

	server.FastForward(2 * time.Minute)

	d, err = l.Allow(ctx, "1.2.3.4", p)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)
}

func TestRedisKeysIndependent(t *testing.T) {
	l, _ := newRedisLimiter(t)
	ctx := context.Background()
	p := Policy{Window: time.Minute, MaxRequests: 1}

	d, err := l.Allow(ctx, "1.1.1.1", p)
	require.NoError(t, err)
	require.True(t, d.Allowed)

	d, err = l.Allow(ctx, "2.2.2.2", p)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}
