package order

import (
	"context"
	"sync"
	"time"
)

// MemoryIdempotencyStore is the single-process fallback used when Redis is
// not configured.
type MemoryIdempotencyStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]idemEntry
}

type idemEntry struct {
	orderID   string
	expiresAt time.Time
}

func NewMemoryIdempotencyStore(ttl time.Duration) *MemoryIdempotencyStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &MemoryIdempotencyStore{ttl: ttl, now: time.Now, entries: map[string]idemEntry{}}
}

func (s *MemoryIdempotencyStore) Lookup(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return "", false, nil
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.entries, key)
		return "", false, nil
	}
	return entry.orderID, true, nil
}

// Remember keeps the first order recorded for key until it expires.
func (s *MemoryIdempotencyStore) Remember(ctx context.Context, key, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if entry, ok := s.entries[key]; ok && now.Before(entry.expiresAt) {
		return nil
	}
	s.entries[key] = idemEntry{orderID: orderID, expiresAt: now.Add(s.ttl)}
	return nil
}
