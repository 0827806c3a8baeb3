package store

import (
	"context"
	"sync"
	"time"

	"github.com/dquispe/agrosat-advisor/internal/model"
)

// MemoryCacheStore is a concurrency-safe in-memory weather cache store. It
// backs deployments without a database path and the cache service tests.
type MemoryCacheStore struct {
	mu sync.RWMutex

	// key: place key, value: cached entry
	data map[string]model.WeatherCache
}

func NewMemoryCacheStore() *MemoryCacheStore {
	return &MemoryCacheStore{
		data: make(map[string]model.WeatherCache),
	}
}

// Get returns the cached entry for a key, or ErrNotFound.
func (s *MemoryCacheStore) Get(_ context.Context, key string) (model.WeatherCache, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.data[key]
	if !ok {
		return model.WeatherCache{}, ErrNotFound
	}
	return entry, nil
}

// Upsert replaces the entry for a key.
func (s *MemoryCacheStore) Upsert(_ context.Context, key string, payload []byte, fetchedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = model.WeatherCache{Key: key, Payload: payload, CreatedAt: fetchedAt}
	return nil
}

// DeleteOlderThan removes entries last written before cutoff.
func (s *MemoryCacheStore) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for key, entry := range s.data {
		if entry.CreatedAt.Before(cutoff) {
			delete(s.data, key)
			removed++
		}
	}
	return removed, nil
}
