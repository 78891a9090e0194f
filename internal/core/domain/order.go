package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order represents a purchase of a product.
type Order struct {
	ID        uuid.UUID   `json:"id"         db:"id"`
	ProductID uuid.UUID   `json:"product_id" db:"product_id"`
	Quantity  int         `json:"quantity"   db:"quantity"`
	Status    OrderStatus `json:"status"     db:"status"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}

// OrderInput is the payload accepted when creating an order.
type OrderInput struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
	OrderStatusShipped OrderStatus = "shipped"
)
