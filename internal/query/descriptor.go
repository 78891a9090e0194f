package query

import (
	"context"
	"net/url"
	"time"

	"github.com/vietddude/storekit/internal/api/resource"
)

// Descriptor pairs a cache key with the fetch that produces its value and
// the staleness policy for cached results. Descriptors are built per call
// site and never persisted; building one performs no fetch.
type Descriptor[T any] struct {
	Key       Key
	Fetch     func(ctx context.Context) (T, error)
	StaleTime time.Duration
}

// ListQuery builds the descriptor for a filtered list read. Structurally
// equal filters yield structurally equal keys regardless of how the
// url.Values were assembled.
func ListQuery[R any, I any](
	svc *resource.Service[R, I],
	filter url.Values,
	staleTime time.Duration,
) Descriptor[[]R] {
	return Descriptor[[]R]{
		Key: NewKey(svc.Name(), "list", valuesMap(filter)),
		Fetch: func(ctx context.Context) ([]R, error) {
			return svc.List(ctx, filter)
		},
		StaleTime: staleTime,
	}
}

// GetQuery builds the descriptor for a single-resource read.
func GetQuery[R any, I any](
	svc *resource.Service[R, I],
	id string,
	staleTime time.Duration,
) Descriptor[R] {
	return Descriptor[R]{
		Key: NewKey(svc.Name(), "detail", id),
		Fetch: func(ctx context.Context) (R, error) {
			return svc.Get(ctx, id)
		},
		StaleTime: staleTime,
	}
}
