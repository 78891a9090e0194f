package query

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/vietddude/storekit/internal/metrics"
)

// Entry is a cached query result. Staleness is judged against FetchedAt at
// read time; stores only provide key-addressed storage.
type Entry struct {
	Value     []byte    `json:"value"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Store is a key-addressed entry store. Implementations must be safe under
// concurrent access.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Set(ctx context.Context, key string, e Entry) error
	InvalidatePrefix(ctx context.Context, prefix string) (int, error)
	Close() error
}

// Cache is a read-through query cache. Concurrent reads of the same key
// share a single in-flight fetch.
type Cache struct {
	store Store
	group singleflight.Group
	nowFn func() time.Time
}

// NewCache creates a cache over the given store.
func NewCache(store Store) *Cache {
	return &Cache{store: store, nowFn: time.Now}
}

// Run resolves a descriptor through the cache: a cached entry younger than
// the descriptor's StaleTime is returned as-is; otherwise the fetch runs
// (deduplicated across concurrent callers) and the result is stored on
// success. Failed fetches are never cached. A caller whose context is
// cancelled while waiting gets ctx.Err(); the shared fetch keeps running so
// its result stays available to other callers and later reads.
func Run[T any](ctx context.Context, c *Cache, d Descriptor[T]) (T, error) {
	var zero T
	key := d.Key.Canonical()

	if e, ok, err := c.store.Get(ctx, key); err != nil {
		slog.Warn("cache read failed", "key", key, "error", err)
	} else if ok && c.nowFn().Sub(e.FetchedAt) < d.StaleTime {
		var v T
		if err := json.Unmarshal(e.Value, &v); err == nil {
			metrics.CacheHitsTotal.WithLabelValues(d.Key.Resource()).Inc()
			return v, nil
		}
		// undecodable entry, fall through to refetch
	}
	metrics.CacheMissesTotal.WithLabelValues(d.Key.Resource()).Inc()

	// The fetch is detached from any single caller's cancellation so one
	// unmounted consumer cannot fail the flight for the others.
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		v, err := d.Fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode cache entry: %w", err)
		}
		if err := c.store.Set(fetchCtx, key, Entry{Value: b, FetchedAt: c.nowFn()}); err != nil {
			slog.Warn("cache write failed", "key", key, "error", err)
		}
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// Invalidate drops every cached entry rooted at the resource name and
// returns the number of entries removed.
func (c *Cache) Invalidate(ctx context.Context, resource string) (int, error) {
	n, err := c.store.InvalidatePrefix(ctx, ResourcePrefix(resource))
	if n > 0 {
		metrics.CacheInvalidationsTotal.WithLabelValues(resource).Add(float64(n))
	}
	if err != nil {
		return n, fmt.Errorf("invalidate %s: %w", resource, err)
	}
	return n, nil
}

// Close closes the underlying store.
func (c *Cache) Close() error {
	return c.store.Close()
}
