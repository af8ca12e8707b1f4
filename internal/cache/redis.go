package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zvrva/railbooking/config"
)

// RedisCache keeps short-lived free-seat counts per train so route search
// does not hit the seat ledger on every request. Entries expire on their
// own and are dropped early by the worker when a seat is claimed.
type RedisCache struct {
	client          *redis.Client
	availabilityTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, availabilityTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:          redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		availabilityTTL: availabilityTTL,
	}
}

// GetAvailability returns the cached free-seat count and whether the key
// was present.
func (c *RedisCache) GetAvailability(ctx context.Context, trainNo string) (int, bool, error) {
	val, err := c.client.Get(ctx, availabilityKey(trainNo)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, err
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

func (c *RedisCache) SetAvailability(ctx context.Context, trainNo string, count int) error {
	return c.client.Set(ctx, availabilityKey(trainNo), strconv.Itoa(count), c.availabilityTTL).Err()
}

func (c *RedisCache) InvalidateAvailability(ctx context.Context, trainNo string) error {
	return c.client.Del(ctx, availabilityKey(trainNo)).Err()
}

func availabilityKey(trainNo string) string {
	return fmt.Sprintf("cache:train:%s:available", trainNo)
}
