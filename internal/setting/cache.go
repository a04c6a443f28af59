package setting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores the persisted settings record between requests.
type Cache interface {
	// Get reports ok=false on a miss.
	Get(ctx context.Context) (s *Settings, ok bool, err error)
	Set(ctx context.Context, s *Settings) error
	Invalidate(ctx context.Context) error
}

const cacheKey = "hotel:settings"

// cachedSettings is the JSON payload stored under cacheKey.
type cachedSettings struct {
	MinBookingLength    int       `json:"minBookingLength"`
	MaxBookingLength    int       `json:"maxBookingLength"`
	MaxGuestsPerBooking int       `json:"maxGuestsPerBooking"`
	BreakfastPrice      float64   `json:"breakfastPrice"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

func encodeSettings(s *Settings) ([]byte, error) {
	return json.Marshal(cachedSettings{
		MinBookingLength:    s.MinBookingLength,
		MaxBookingLength:    s.MaxBookingLength,
		MaxGuestsPerBooking: s.MaxGuestsPerBooking,
		BreakfastPrice:      s.BreakfastPrice,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	})
}

func decodeSettings(raw []byte) (*Settings, error) {
	var c cachedSettings
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &Settings{
		MinBookingLength:    c.MinBookingLength,
		MaxBookingLength:    c.MaxBookingLength,
		MaxGuestsPerBooking: c.MaxGuestsPerBooking,
		BreakfastPrice:      c.BreakfastPrice,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}, nil
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context) (*Settings, bool, error) {
	raw, err := c.client.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read settings cache failed: %w", err)
	}

	s, err := decodeSettings(raw)
	if err != nil {
		return nil, false, fmt.Errorf("decode settings cache failed: %w", err)
	}
	return s, true, nil
}

func (c *RedisCache) Set(ctx context.Context, s *Settings) error {
	raw, err := encodeSettings(s)
	if err != nil {
		return fmt.Errorf("encode settings cache failed: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("write settings cache failed: %w", err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, cacheKey).Err(); err != nil {
		return fmt.Errorf("invalidate settings cache failed: %w", err)
	}
	return nil
}
