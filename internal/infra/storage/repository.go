// Package storage defines the repository interfaces the reference API
// server persists through. Implementations live in the postgres and memory
// subpackages.
package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/vietddude/storekit/internal/core/domain"
)

// ProductFilter narrows product listings.
type ProductFilter struct {
	// Q matches a substring of the product name, case-insensitive.
	Q string
}

// ProductRepository persists products.
type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
}

// OrderRepository persists orders.
type OrderRepository interface {
	List(ctx context.Context) ([]*domain.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	Create(ctx context.Context, o *domain.Order) error
}
