// Package checkout orchestrates the purchase flow: cart validation,
// discount computation, payment, and order persistence.
package checkout

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/shopcore/checkout/internal/domain/cart"
	"github.com/shopcore/checkout/internal/domain/discount"
	"github.com/shopcore/checkout/internal/domain/inventory"
	"github.com/shopcore/checkout/internal/domain/order"
)

// ChargeResult is the outcome reported by a payment gateway. A declined
// charge has Success false and a human-readable Err; it is a business
// outcome, not a transport failure.
type ChargeResult struct {
	Success       bool
	TransactionID string
	Err           string
}

// Gateway charges a payment method. The checkout service treats it as an
// opaque external capability with no retry or idempotency policy of its
// own. A returned error means the charge outcome is unknown (transport
// fault); a decline is reported through ChargeResult.
type Gateway interface {
	Charge(ctx context.Context, amount decimal.Decimal, token string) (ChargeResult, error)
}

// Result is the caller-visible outcome of a checkout. Failure is an
// expected, user-facing business outcome and is reported here rather than
// as an error. Total may be populated on a payment decline to surface the
// attempted amount.
type Result struct {
	Success       bool
	Total         decimal.Decimal
	TransactionID string
	ErrorMessage  string
}

func failure(msg string) Result {
	return Result{ErrorMessage: msg}
}

// Service runs the checkout flow. Each Checkout call is an independent
// transaction; the service keeps no state between calls and never retries.
type Service struct {
	gateway   Gateway
	inventory inventory.Service
	engine    *discount.Engine
	orders    order.Repository
}

// NewService creates a checkout Service. The gateway and inventory service
// are required; the discount engine and order repository may be nil, in
// which case no discounts are applied and no order record is persisted.
func NewService(
	gateway Gateway,
	inv inventory.Service,
	engine *discount.Engine,
	orders order.Repository,
) *Service {
	return &Service{
		gateway:   gateway,
		inventory: inv,
		engine:    engine,
		orders:    orders,
	}
}

// Checkout validates the cart, computes the discounted total, charges the
// payment token, and on success persists an order snapshot. Business
// failures (empty cart, missing token, stock shortfalls, payment declines)
// short-circuit the flow and come back in the Result; a non-nil error is
// reserved for collaborator faults where the outcome is unknown.
func (s *Service) Checkout(ctx context.Context, c *cart.Cart, paymentToken string) (Result, error) {
	// A cart is empty when its total is zero, which also covers carts
	// holding only zero-priced items.
	if c.Total().IsZero() {
		return failure("cart is empty"), nil
	}

	if paymentToken == "" {
		return failure("payment token is required"), nil
	}

	// Re-validate stock for every line item. This is independent of any
	// check the cart performed at add time: it catches stock changes
	// between add and checkout.
	for _, li := range c.Items() {
		available, err := s.inventory.Available(ctx, li.SKU)
		if err != nil {
			return Result{}, errors.Wrap(err, "check inventory")
		}
		if li.Quantity > available {
			shortfall := &cart.InsufficientInventoryError{
				SKU:       li.SKU,
				Requested: li.Quantity,
				Available: available,
			}
			return failure(shortfall.Error()), nil
		}
	}

	finalTotal := c.Total()
	if s.engine != nil {
		finalTotal = s.engine.Apply(c)
	}

	charge, err := s.gateway.Charge(ctx, finalTotal, paymentToken)
	if err != nil {
		return Result{}, errors.Wrap(err, "charge payment")
	}
	if !charge.Success {
		msg := charge.Err
		if msg == "" {
			msg = "payment failed"
		}
		return Result{Total: finalTotal, ErrorMessage: msg}, nil
	}

	if s.orders != nil {
		o := order.FromCart(c, finalTotal, charge.TransactionID)
		if err := s.orders.Save(ctx, o); err != nil {
			return Result{}, errors.Wrap(err, "save order")
		}
	}

	return Result{
		Success:       true,
		Total:         finalTotal,
		TransactionID: charge.TransactionID,
	}, nil
}
