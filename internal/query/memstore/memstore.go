// Package memstore is the in-process query.Store: a sharded map keyed by
// canonical cache keys. It is the default backend when no Redis is
// configured.
package memstore

import (
	"context"
	"strings"
	"sync"

	"github.com/vietddude/storekit/internal/query"
)

const defaultShards = 64

// Store is a sharded in-memory entry store.
type Store struct {
	shards []shard
}

type shard struct {
	mu sync.RWMutex
	m  map[string]query.Entry
}

// New creates an empty store.
func New() *Store {
	s := &Store{shards: make([]shard, defaultShards)}
	for i := range s.shards {
		s.shards[i].m = make(map[string]query.Entry)
	}
	return s
}

// FNV-1a 64
func (s *Store) shardFor(key string) *shard {
	var h uint64 = 1469598103934665603
	for i := 0; i < len(key); i++ {
		h ^= uint64(key[i])
		h *= 1099511628211
	}
	return &s.shards[int(h%uint64(len(s.shards)))]
}

// Get returns the entry stored under key, if any.
func (s *Store) Get(ctx context.Context, key string) (query.Entry, bool, error) {
	sh := s.shardFor(key)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	e, ok := sh.m[key]
	return e, ok, nil
}

// Set stores an entry under key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key string, e query.Entry) error {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.m[key] = e
	return nil
}

// InvalidatePrefix deletes every entry whose key starts with prefix and
// returns the number of entries removed.
func (s *Store) InvalidatePrefix(ctx context.Context, prefix string) (int, error) {
	removed := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		for k := range sh.m {
			if strings.HasPrefix(k, prefix) {
				delete(sh.m, k)
				removed++
			}
		}
		sh.mu.Unlock()
	}
	return removed, nil
}

// Len reports the number of stored entries.
func (s *Store) Len() int {
	n := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.RLock()
		n += len(sh.m)
		sh.mu.RUnlock()
	}
	return n
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error { return nil }
