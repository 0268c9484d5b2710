// Package order defines the completed-purchase record produced by checkout
// and its persistence contract.
package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopcore/checkout/internal/domain/cart"
)

// ErrNotFound is returned when a requested order does not exist.
var ErrNotFound = errors.New("order not found")

// Item is a line of a completed order, snapshotted from the cart at
// checkout time.
type Item struct {
	SKU      string          `json:"sku"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Order represents a completed purchase. It is created once per successful
// checkout and never mutated afterwards.
type Order struct {
	ID            string
	Items         []Item
	Total         decimal.Decimal
	TransactionID string
	CreatedAt     time.Time
}

// FromCart builds an Order from the cart's current line items, preserving
// their insertion order, with the given post-discount total and payment
// transaction ID.
func FromCart(c *cart.Cart, total decimal.Decimal, transactionID string) *Order {
	lines := c.Items()
	items := make([]Item, len(lines))
	for i, li := range lines {
		items[i] = Item{
			SKU:      li.SKU,
			Quantity: li.Quantity,
			Price:    li.UnitPrice,
		}
	}

	return &Order{
		ID:            uuid.New().String(),
		Items:         items,
		Total:         total,
		TransactionID: transactionID,
		CreatedAt:     time.Now(),
	}
}

// Repository defines persistence operations for orders.
type Repository interface {
	Save(ctx context.Context, o *Order) error
	// GetByID returns the order with the given ID, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*Order, error)
	// GetAll returns all saved orders in unspecified order.
	GetAll(ctx context.Context) ([]*Order, error)
}
