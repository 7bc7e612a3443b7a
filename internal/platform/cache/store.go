// Package cache is an in-process TTL store used by the repository
// decorators in front of the HTTP read routes.
package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

var errNilLoader = errors.New("cache: loader is required")

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

func (e entry[V]) expired(now time.Time, ttl time.Duration) bool {
	return ttl > 0 && !e.expiresAt.After(now)
}

type Option func(*options)

type options struct {
	maxEntries int
	onLookup   func(hit bool)
}

// WithMaxEntries bounds the store. When full, expired entries are swept
// first and then an arbitrary entry is dropped.
func WithMaxEntries(n int) Option {
	return func(o *options) { o.maxEntries = n }
}

// WithLookupObserver is called on every Get with whether it hit.
func WithLookupObserver(fn func(hit bool)) Option {
	return func(o *options) { o.onLookup = fn }
}

// Store is a TTL cache with load collapsing. A zero ttl keeps entries until
// they are deleted or evicted.
type Store[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	ttl     time.Duration
	opts    options
	flight  singleflight.Group
	now     func() time.Time
}

func NewStore[V any](ttl time.Duration, opts ...Option) *Store[V] {
	s := &Store[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&s.opts)
	}
	return s
}

func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store[V]) Get(_ context.Context, key string) (V, bool) {
	value, ok := s.lookup(key)
	if s.opts.onLookup != nil {
		s.opts.onLookup(ok)
	}
	return value, ok
}

func (s *Store[V]) lookup(key string) (V, bool) {
	var zero V
	if key == "" {
		return zero, false
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if e.expired(s.now(), s.ttl) {
		s.mu.Lock()
		if current, still := s.entries[key]; still && current.expired(s.now(), s.ttl) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return zero, false
	}
	return e.value, true
}

func (s *Store[V]) Set(_ context.Context, key string, value V) {
	if key == "" {
		return
	}

	now := s.now()
	e := entry[V]{value: value}
	if s.ttl > 0 {
		e.expiresAt = now.Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[key]; !exists && s.opts.maxEntries > 0 && len(s.entries) >= s.opts.maxEntries {
		s.evictLocked(now)
	}
	s.entries[key] = e
}

func (s *Store[V]) evictLocked(now time.Time) {
	for key, e := range s.entries {
		if e.expired(now, s.ttl) {
			delete(s.entries, key)
		}
	}
	if len(s.entries) < s.opts.maxEntries {
		return
	}
	for key := range s.entries {
		delete(s.entries, key)
		return
	}
}

func (s *Store[V]) Delete(_ context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	s.mu.Lock()
	for _, key := range keys {
		delete(s.entries, key)
	}
	s.mu.Unlock()
}

// GetOrLoad returns the cached value or runs loader once per key across
// concurrent callers. Loader errors are not cached.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	var zero V
	if loader == nil {
		return zero, errNilLoader
	}
	if key == "" {
		return loader(ctx)
	}
	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	out, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.lookup(key); ok {
			return cached, nil
		}
		loaded, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}
	value, _ := out.(V)
	return value, nil
}
