// Package cart implements the shopping cart: an ordered collection of line
// items priced against a product catalog and optionally constrained by an
// inventory service.
package cart

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/shopcore/checkout/internal/domain/inventory"
	"github.com/shopcore/checkout/internal/domain/product"
)

// ErrInvalidQuantity is returned when an item is added with a non-positive
// quantity.
var ErrInvalidQuantity = errors.New("quantity must be greater than 0")

// ItemNotInCartError indicates a removal was attempted for a SKU the cart
// does not hold.
type ItemNotInCartError struct {
	SKU string
}

func (e *ItemNotInCartError) Error() string {
	return fmt.Sprintf("item %s not in cart", e.SKU)
}

// InsufficientInventoryError indicates the cart would hold more units of a
// SKU than the inventory service reports available.
type InsufficientInventoryError struct {
	SKU       string
	Requested int
	Available int
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("insufficient inventory for %s: requested %d, only %d available",
		e.SKU, e.Requested, e.Available)
}

// LineItem is a cart entry: a SKU, the accumulated quantity, and the unit
// price captured from the catalog when the SKU was first added. The price is
// not refreshed if the catalog changes later; a cart's pricing is locked in
// once items are added.
type LineItem struct {
	SKU       string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Subtotal returns unit price times quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Cart accumulates line items, at most one per SKU, preserving the order in
// which SKUs were first added. It references (does not own) a catalog and an
// optional inventory service. A Cart is exclusively owned by its creator and
// is not safe for concurrent use.
type Cart struct {
	catalog   product.Repository
	inventory inventory.Service

	skus  []string
	items map[string]*LineItem
}

// New creates an empty cart priced against the given catalog. A nil
// inventory service disables stock checks on add.
func New(catalog product.Repository, inv inventory.Service) *Cart {
	return &Cart{
		catalog:   catalog,
		inventory: inv,
		items:     make(map[string]*LineItem),
	}
}

// AddItem adds quantity units of the given SKU to the cart, merging into an
// existing line item when the SKU is already present. The unit price of an
// existing line item is kept from its first insertion.
//
// When an inventory service is attached, the check applies to the cumulative
// quantity the cart would hold, not just the increment, so repeated
// additions of the same SKU cannot creep past the available stock.
func (c *Cart) AddItem(ctx context.Context, sku string, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	p, err := c.catalog.GetBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return errors.Wrapf(err, "product %q", sku)
		}
		return errors.Wrap(err, "lookup product")
	}

	if c.inventory != nil {
		current := 0
		if li, ok := c.items[sku]; ok {
			current = li.Quantity
		}
		requested := current + quantity

		available, err := c.inventory.Available(ctx, sku)
		if err != nil {
			return errors.Wrap(err, "check inventory")
		}
		if requested > available {
			return &InsufficientInventoryError{
				SKU:       sku,
				Requested: requested,
				Available: available,
			}
		}
	}

	if li, ok := c.items[sku]; ok {
		li.Quantity += quantity
		return nil
	}

	c.skus = append(c.skus, sku)
	c.items[sku] = &LineItem{SKU: sku, Quantity: quantity, UnitPrice: p.Price}
	return nil
}

// RemoveItem deletes the line item for the given SKU entirely. There is no
// partial-quantity removal.
func (c *Cart) RemoveItem(sku string) error {
	if _, ok := c.items[sku]; !ok {
		return &ItemNotInCartError{SKU: sku}
	}

	delete(c.items, sku)
	for i, s := range c.skus {
		if s == sku {
			c.skus = append(c.skus[:i], c.skus[i+1:]...)
			break
		}
	}
	return nil
}

// Total returns the sum of all line item subtotals, zero for an empty cart.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, sku := range c.skus {
		total = total.Add(c.items[sku].Subtotal())
	}
	return total
}

// Items returns a snapshot of the current line items in the order their
// SKUs were first added. Mutating the returned slice does not affect the
// cart.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, 0, len(c.skus))
	for _, sku := range c.skus {
		out = append(out, *c.items[sku])
	}
	return out
}
