package setting

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachePayload(t *testing.T) {
	s := &Settings{MinBookingLength: 2, MaxBookingLength: 14, MaxGuestsPerBooking: 6, BreakfastPrice: 12.5,
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), UpdatedAt: time.Date(2025, 2, 1, 8, 30, 0, 0, time.UTC)}

	raw, err := encodeSettings(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"minBookingLength":2,"maxBookingLength":14,"maxGuestsPerBooking":6,"breakfastPrice":12.5,
		"createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-02-01T08:30:00Z"}`, string(raw))

	got, err := decodeSettings(raw)
	require.NoError(t, err)
	assert.Equal(t, s, got)

	_, err = decodeSettings([]byte("{not json"))
	assert.Error(t, err)
}

func TestRedisCache_RoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })
	require.NoError(t, client.Ping(ctx).Err())

	cache := NewRedisCache(client, time.Minute)
	require.NoError(t, cache.Invalidate(ctx))

	_, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	want := &Settings{MinBookingLength: 2, MaxBookingLength: 14, MaxGuestsPerBooking: 6, BreakfastPrice: 12.5,
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, cache.Set(ctx, want))

	got, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want.MaxBookingLength, got.MaxBookingLength)
	assert.Equal(t, want.BreakfastPrice, got.BreakfastPrice)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))

	ttl, err := client.TTL(ctx, cacheKey).Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)

	require.NoError(t, cache.Invalidate(ctx))
	_, ok, err = cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })

	cache := NewRedisCache(client, time.Minute)
	_, ok, err := cache.Get(context.Background())
	assert.Error(t, err)
	assert.False(t, ok)

	// The service treats the failure as a miss and reads storage.
	repo := new(mockRepo)
	repo.On("Get", context.Background()).Return(nil, ErrNotFound)
	res, err := NewService(repo, cache).GetOrDefault(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceDefault, res.Source)
}
