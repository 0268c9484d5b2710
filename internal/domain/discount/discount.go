// Package discount implements the promotional discount pipeline: an ordered
// sequence of rules folded over a cart's running total.
package discount

import (
	"github.com/shopspring/decimal"

	"github.com/shopcore/checkout/internal/domain/cart"
)

const bulkMinQuantity = 10

var (
	bulkMultiplier = decimal.RequireFromString("0.9")

	orderThreshold  = decimal.NewFromInt(1000)
	orderMultiplier = decimal.RequireFromString("0.95")
)

// Rule transforms a cart's running total. Rules are applied in registration
// order and each rule receives the previous rule's output as currentTotal,
// so rule application is order-sensitive.
type Rule interface {
	Apply(c *cart.Cart, currentTotal decimal.Decimal) decimal.Decimal
}

// BulkRule gives 10% off every line item with quantity >= 10.
//
// It rebuilds the total from the cart's raw line items and ignores
// currentTotal entirely: when it runs after another rule, that rule's
// discount is discarded for every non-qualifying line. This matches the
// long-standing behaviour of the pricing pipeline and is pinned by tests;
// changing it must be a deliberate, visible decision.
type BulkRule struct{}

// Apply returns the rebuilt line-item total with qualifying lines reduced
// by 10%.
func (BulkRule) Apply(c *cart.Cart, _ decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, li := range c.Items() {
		subtotal := li.Subtotal()
		if li.Quantity >= bulkMinQuantity {
			subtotal = subtotal.Mul(bulkMultiplier)
		}
		total = total.Add(subtotal)
	}
	return total
}

// OrderRule gives 5% off the whole order when the running total reaches
// 1000. Unlike BulkRule it operates on currentTotal and therefore respects
// discounts applied by earlier rules.
type OrderRule struct{}

// Apply returns currentTotal reduced by 5% when it is at least 1000,
// unchanged otherwise.
func (OrderRule) Apply(_ *cart.Cart, currentTotal decimal.Decimal) decimal.Decimal {
	if currentTotal.GreaterThanOrEqual(orderThreshold) {
		return currentTotal.Mul(orderMultiplier)
	}
	return currentTotal
}

// Engine holds an ordered list of rules. The order rules are added is the
// order they are applied.
type Engine struct {
	rules []Rule
}

// NewEngine creates an engine with no rules.
func NewEngine() *Engine {
	return &Engine{}
}

// AddRule appends a rule to the pipeline.
func (e *Engine) AddRule(r Rule) {
	e.rules = append(e.rules, r)
}

// Apply folds every registered rule left-to-right, starting from the cart's
// undiscounted total. With no rules it returns the cart total unmodified.
func (e *Engine) Apply(c *cart.Cart) decimal.Decimal {
	total := c.Total()
	for _, r := range e.rules {
		total = r.Apply(c, total)
	}
	return total
}
