// Package resource provides typed list/get/create operations for a single
// API resource. Every failed request is routed through apierror.Classify
// before it reaches the caller.
package resource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/vietddude/storekit/internal/api/apierror"
	"github.com/vietddude/storekit/internal/api/transport"
)

// Service wraps transport calls for one resource. R is the resource type,
// I its creation input. The resource name is also its URL path segment.
type Service[R any, I any] struct {
	client *transport.Client
	name   string
	field  apierror.Field
}

// NewService creates a service for the named resource.
func NewService[R any, I any](client *transport.Client, name string, field apierror.Field) *Service[R, I] {
	return &Service[R, I]{client: client, name: name, field: field}
}

// Name returns the resource name.
func (s *Service[R, I]) Name() string { return s.name }

// List fetches all resources matching the filter.
func (s *Service[R, I]) List(ctx context.Context, filter url.Values) ([]R, error) {
	raw, err := s.client.Do(ctx, http.MethodGet, "/"+s.name, filter, nil)
	if err != nil {
		return nil, apierror.Classify(err, s.field)
	}

	var out []R
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode %s list: %w", s.name, err)
	}
	return out, nil
}

// Get fetches a single resource by id.
func (s *Service[R, I]) Get(ctx context.Context, id string) (R, error) {
	var zero R

	raw, err := s.client.Do(ctx, http.MethodGet, "/"+s.name+"/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return zero, apierror.Classify(err, s.field)
	}

	var out R
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, fmt.Errorf("decode %s: %w", s.name, err)
	}
	return out, nil
}

// Create submits a new resource and returns the stored representation.
func (s *Service[R, I]) Create(ctx context.Context, input I) (R, error) {
	var zero R

	raw, err := s.client.Do(ctx, http.MethodPost, "/"+s.name, nil, input)
	if err != nil {
		return zero, apierror.Classify(err, s.field)
	}

	var out R
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, fmt.Errorf("decode created %s: %w", s.name, err)
	}
	return out, nil
}
