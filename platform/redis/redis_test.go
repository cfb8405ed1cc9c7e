package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/21R01A7263/docGPT/config"
)

func TestInitRedisRequiresURL(t *testing.T) {
	_, err := InitRedis(&config.Config{})
	assert.Error(t, err)

	_, err = InitRedis(&config.Config{RedisURL: "not a url"})
	assert.Error(t, err)
}

func newTestService(t *testing.T) (*Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	svc, err := InitRedis(&config.Config{RedisURL: "redis://" + mr.Addr() + "?protocol=2"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return svc, mr
}

func TestCacheRoundTrip(t *testing.T) {
	svc, mr := newTestService(t)
	ctx := context.Background()

	_, ok, err := svc.GetCache(ctx, "answer:1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, svc.SetCache(ctx, "answer:1", []byte(`"v"`), time.Minute))
	assert.True(t, mr.Exists("cache:answer:1"))
	v, ok, err := svc.GetCache(ctx, "answer:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `"v"`, string(v))

	require.NoError(t, svc.DelCache(ctx, "answer:1"))
	_, ok, err = svc.GetCache(ctx, "answer:1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheEntriesExpire(t *testing.T) {
	svc, mr := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetCache(ctx, "k", []byte("1"), time.Minute))
	assert.Equal(t, time.Minute, mr.TTL("cache:k"))

	mr.FastForward(2 * time.Minute)
	_, ok, err := svc.GetCache(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInitRedisUsesPasswordOverride(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.RequireAuth("s3cret")

	_, err := InitRedis(&config.Config{RedisURL: "redis://" + mr.Addr() + "?protocol=2"})
	assert.Error(t, err)

	svc, err := InitRedis(&config.Config{RedisURL: "redis://" + mr.Addr() + "?protocol=2", RedisPassword: "s3cret"})
	require.NoError(t, err)
	assert.NoError(t, svc.Close())
}

func TestGetCacheReportsTransportErrors(t *testing.T) {
	svc, mr := newTestService(t)
	mr.Close()

	_, ok, err := svc.GetCache(context.Background(), "k")
	assert.Error(t, err)
	assert.False(t, ok)
}
