package translate

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisCacheRoundTrip(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := NewRedisCache(client, time.Hour)
	ctx := context.Background()

	_, ok := cache.Get(ctx, "hello world!", "hi")
	assert.False(t, ok)

	cache.Set(ctx, "hello world!", "hi", "नमस्ते दुनिया!")
	got, ok := cache.Get(ctx, "hello world!", "hi")
	require.True(t, ok)
	assert.Equal(t, "नमस्ते दुनिया!", got)

	_, ok = cache.Get(ctx, "hello world!", "fr")
	assert.False(t, ok, "target is part of the key")

	key := cacheKey("hello world!", "hi")
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Hour, mr.TTL(key))
}

func TestRedisCacheExpires(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := NewRedisCache(client, time.Minute)
	ctx := context.Background()

	cache.Set(ctx, "expiring text", "hi", "translated")
	mr.FastForward(2 * time.Minute)

	_, ok := cache.Get(ctx, "expiring text", "hi")
	assert.False(t, ok)
}

func TestRedisCacheUnavailableIsAMiss(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := NewRedisCache(client, time.Minute)
	mr.Close()

	_, ok := cache.Get(context.Background(), "anything here", "hi")
	assert.False(t, ok)
}

func TestNewRedisClientRejectsBadURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "not a url")
	assert.Error(t, err)
}

func TestServiceWithRedisCache(t *testing.T) {
	_, client := newTestRedis(t)
	p := &fakeProvider{}
	svc := NewService(p, NewRedisCache(client, time.Hour))
	text := "Data analyst with SQL and Tableau"

	first := svc.Translate(context.Background(), text, "hi")
	second := svc.Translate(context.Background(), text, "hi")

	assert.Equal(t, "[hi]"+text, first)
	assert.Equal(t, first, second)
	assert.Len(t, p.calls, 1)
}
