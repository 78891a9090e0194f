package query

import (
	"context"
	"log/slog"

	"github.com/vietddude/storekit/internal/api/resource"
)

// Mutation runs a write and, only when it settles successfully, invalidates
// every cached query rooted at the mutation's resource. Invalidation is
// deliberately coarse: one first-segment prefix per mutation, so no stale
// read of the resource survives a successful write.
type Mutation[I any, R any] struct {
	cache    *Cache
	resource string
	fn       func(ctx context.Context, input I) (R, error)
}

// NewMutation creates a mutation for the named resource.
func NewMutation[I any, R any](
	cache *Cache,
	resource string,
	fn func(ctx context.Context, input I) (R, error),
) *Mutation[I, R] {
	return &Mutation[I, R]{cache: cache, resource: resource, fn: fn}
}

// CreateMutation builds the mutation for a service's Create operation.
func CreateMutation[R any, I any](cache *Cache, svc *resource.Service[R, I]) *Mutation[I, R] {
	return NewMutation(cache, svc.Name(), svc.Create)
}

// Execute runs the write. On failure the error (typed or opaque, exactly as
// the service surfaced it) is returned and nothing is invalidated. On
// success the resource's cache entries are invalidated before the result is
// returned, so a read issued after Execute never sees pre-write data.
func (m *Mutation[I, R]) Execute(ctx context.Context, input I) (R, error) {
	out, err := m.fn(ctx, input)
	if err != nil {
		var zero R
		return zero, err
	}

	if _, ierr := m.cache.Invalidate(ctx, m.resource); ierr != nil {
		// The write itself succeeded; surface the cache problem in logs only.
		slog.Warn("post-mutation invalidation failed", "resource", m.resource, "error", ierr)
	}

	return out, nil
}
