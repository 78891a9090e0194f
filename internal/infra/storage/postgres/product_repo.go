package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vietddude/storekit/internal/core/domain"
	"github.com/vietddude/storekit/internal/infra/storage"
)

// ProductRepo implements storage.ProductRepository using PostgreSQL.
type ProductRepo struct {
	db *DB
}

// NewProductRepo creates a new PostgreSQL product repository.
func NewProductRepo(db *DB) *ProductRepo {
	return &ProductRepo{db: db}
}

// List retrieves products matching the filter, newest first.
func (r *ProductRepo) List(
	ctx context.Context,
	filter storage.ProductFilter,
) ([]*domain.Product, error) {
	var products []*domain.Product

	query := `SELECT id, name, sku, price_cents, created_at FROM products`
	args := []any{}
	if filter.Q != "" {
		query += ` WHERE name ILIKE $1`
		args = append(args, "%"+filter.Q+"%")
	}
	query += ` ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a product by id. Returns nil when not found.
func (r *ProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var p domain.Product
	err := r.db.GetContext(ctx, &p,
		`SELECT id, name, sku, price_cents, created_at FROM products WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}

// Create saves a product.
func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO products (id, name, sku, price_cents, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.Name, p.SKU, p.PriceCents, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}
