package security

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// CounterStore is a counting key-value store with fixed-window TTL
// semantics. The window starts when a key is first incremented and the
// count resets when it elapses. Backed by Redis in production and by an
// in-memory clock-injectable store in tests.
type CounterStore interface {
	// Incr increments key and returns the new count. The first increment
	// of a key arms its expiry to window from now.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
	// Get returns the current count for key, 0 if absent or expired.
	Get(ctx context.Context, key string) (int64, error)
	// Reset removes key, clearing its count and window.
	Reset(ctx context.Context, key string) error
}

// RedisCounterStore implements CounterStore over a shared Redis client.
type RedisCounterStore struct {
	rdb *redis.Client
}

// NewRedisCounterStore creates a CounterStore backed by rdb.
func NewRedisCounterStore(rdb *redis.Client) *RedisCounterStore {
	return &RedisCounterStore{rdb: rdb}
}

func (s *RedisCounterStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := s.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	// NX keeps the window fixed: only the first increment arms the expiry.
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (s *RedisCounterStore) Get(ctx context.Context, key string) (int64, error) {
	n, err := s.rdb.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}

func (s *RedisCounterStore) Reset(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

// MemoryCounterStore is an in-process CounterStore. The zero Now func
// falls back to time.Now; tests inject a fake clock to step windows
// deterministically.
type MemoryCounterStore struct {
	Now func() time.Time

	mu      sync.Mutex
	entries map[string]*memCounter
}

type memCounter struct {
	count   int64
	expires time.Time
}

// NewMemoryCounterStore creates an empty in-memory store.
func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{entries: make(map[string]*memCounter)}
}

func (s *MemoryCounterStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *MemoryCounterStore) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.entries[key]
	if !ok || now.After(e.expires) {
		e = &memCounter{expires: now.Add(window)}
		s.entries[key] = e
	}
	e.count++
	return e.count, nil
}

func (s *MemoryCounterStore) Get(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || s.now().After(e.expires) {
		return 0, nil
	}
	return e.count, nil
}

func (s *MemoryCounterStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
