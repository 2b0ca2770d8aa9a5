// Package redis keeps short-lived request locks in Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "idempotency:"

type Config struct {
	Addr     string
	Password string
	DB       int
}

// NewClient connects and pings the server.
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// IdempotencyStore records Idempotency-Key values so a replayed request can
// be rejected.
type IdempotencyStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewIdempotencyStore(client redis.Cmdable, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Acquire returns true only for the first caller with key within the TTL.
func (s *IdempotencyStore) Acquire(ctx context.Context, key string) (bool, error) {
	acquired, err := s.client.SetNX(ctx, keyPrefix+key, "PROCESSING", s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to lock idempotency key: %w", err)
	}
	return acquired, nil
}

// Release drops the lock so the request may be retried, used when the
// request failed.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, keyPrefix+key).Err()
}
