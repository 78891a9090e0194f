// Package redistore is the Redis-backed query.Store, for deployments that
// share one query cache across processes. Prefix invalidation walks the
// keyspace with SCAN so it never blocks the server on large caches.
package redistore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vietddude/storekit/internal/query"
)

const keyspace = "storekit:query:"

// Config holds Redis connection configuration.
type Config struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	TTL      time.Duration `yaml:"ttl"`
}

// Store is a Redis-backed entry store.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// New creates a store and verifies the connection.
func New(cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = time.Hour
	}
	return &Store{rdb: rdb, ttl: ttl}, nil
}

// Get returns the entry stored under key, if any.
func (s *Store) Get(ctx context.Context, key string) (query.Entry, bool, error) {
	val, err := s.rdb.Get(ctx, keyspace+key).Bytes()
	if err == redis.Nil {
		return query.Entry{}, false, nil
	}
	if err != nil {
		return query.Entry{}, false, fmt.Errorf("get failed: %w", err)
	}

	var e query.Entry
	if err := json.Unmarshal(val, &e); err != nil {
		return query.Entry{}, false, fmt.Errorf("decode entry: %w", err)
	}
	return e, true, nil
}

// Set stores an entry under key. The TTL is a hard upper bound on entry
// lifetime; staleness within the TTL is judged by the cache, not here.
func (s *Store) Set(ctx context.Context, key string, e query.Entry) error {
	val, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}
	if err := s.rdb.Set(ctx, keyspace+key, val, s.ttl).Err(); err != nil {
		return fmt.Errorf("set failed: %w", err)
	}
	return nil
}

// InvalidatePrefix deletes every entry whose key starts with prefix and
// returns the number of entries removed.
func (s *Store) InvalidatePrefix(ctx context.Context, prefix string) (int, error) {
	removed := 0

	iter := s.rdb.Scan(ctx, 0, keyspace+prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == 100 {
			n, err := s.rdb.Del(ctx, keys...).Result()
			removed += int(n)
			if err != nil {
				return removed, fmt.Errorf("del failed: %w", err)
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("scan failed: %w", err)
	}
	if len(keys) > 0 {
		n, err := s.rdb.Del(ctx, keys...).Result()
		removed += int(n)
		if err != nil {
			return removed, fmt.Errorf("del failed: %w", err)
		}
	}
	return removed, nil
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	return s.rdb.Close()
}
