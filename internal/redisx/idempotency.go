package redisx

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// IdempotencyStore maps client idempotency keys to the order they created.
type IdempotencyStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewIdempotencyStore(rdb *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = TTLIdempotency
	}
	return &IdempotencyStore{rdb: rdb, ttl: ttl}
}

func idemKey(key string) string {
	return fmt.Sprintf(KeyIdemOrderCreate, key)
}

func (s *IdempotencyStore) Lookup(ctx context.Context, key string) (string, bool, error) {
	orderID, err := s.rdb.Get(ctx, idemKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return orderID, true, nil
}

// Remember records key -> orderID unless the key is already taken.
func (s *IdempotencyStore) Remember(ctx context.Context, key, orderID string) error {
	return s.rdb.SetNX(ctx, idemKey(key), orderID, s.ttl).Err()
}
