package domain

import (
	"time"

	"github.com/google/uuid"
)

// Resource names double as URL path segments and cache key roots.
const (
	ResourceProducts = "products"
	ResourceOrders   = "orders"
)

// Product represents a sellable catalog item.
type Product struct {
	ID         uuid.UUID `json:"id"          db:"id"`
	Name       string    `json:"name"        db:"name"`
	SKU        string    `json:"sku"         db:"sku"`
	PriceCents int64     `json:"price_cents" db:"price_cents"`
	CreatedAt  time.Time `json:"created_at"  db:"created_at"`
}

// ProductInput is the payload accepted when creating a product.
type ProductInput struct {
	Name       string `json:"name"`
	SKU        string `json:"sku"`
	PriceCents int64  `json:"price_cents"`
}
