package discount

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopcore/checkout/internal/domain/cart"
	"github.com/shopcore/checkout/internal/domain/product"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

type line struct {
	price string
	qty   int
}

// newCart builds a cart holding one line item per entry, each priced at the
// given unit price.
func newCart(t *testing.T, lines ...line) *cart.Cart {
	t.Helper()

	catalog := product.NewCatalog()
	c := cart.New(catalog, nil)
	for i, l := range lines {
		sku := fmt.Sprintf("SKU%03d", i+1)
		p, err := product.New(sku, "Item "+sku, d(l.price))
		require.NoError(t, err)
		catalog.Add(p)
		require.NoError(t, c.AddItem(context.Background(), sku, l.qty))
	}
	return c
}

func applyRules(c *cart.Cart, rules ...Rule) decimal.Decimal {
	e := NewEngine()
	for _, r := range rules {
		e.AddRule(r)
	}
	return e.Apply(c)
}

func TestBulkRule(t *testing.T) {
	tests := []struct {
		name  string
		lines []line
		want  string
	}{
		{
			name:  "10% off at exactly 10 units",
			lines: []line{{"100", 10}},
			want:  "900",
		},
		{
			name:  "no discount below 10 units",
			lines: []line{{"100", 9}},
			want:  "900",
		},
		{
			name:  "applies per line item",
			lines: []line{{"1000", 10}, {"100", 5}},
			want:  "9500", // 9000 discounted + 500 full price
		},
		{
			name:  "all lines qualify",
			lines: []line{{"10", 10}, {"20", 12}},
			want:  "306", // 90 + 216
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyRules(newCart(t, tt.lines...), BulkRule{})
			assert.True(t, d(tt.want).Equal(got), "expected %s, got %s", tt.want, got)
		})
	}
}

func TestOrderRule(t *testing.T) {
	tests := []struct {
		name  string
		lines []line
		want  string
	}{
		{
			name:  "5% off at exactly 1000",
			lines: []line{{"1000", 1}},
			want:  "950",
		},
		{
			name:  "no discount just below the threshold",
			lines: []line{{"999.99", 1}},
			want:  "999.99",
		},
		{
			name:  "no discount below 1000",
			lines: []line{{"100", 9}},
			want:  "900",
		},
		{
			name:  "discount above the threshold",
			lines: []line{{"1000", 2}},
			want:  "1900",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyRules(newCart(t, tt.lines...), OrderRule{})
			assert.True(t, d(tt.want).Equal(got), "expected %s, got %s", tt.want, got)
		})
	}
}

func TestEngine_NoRules(t *testing.T) {
	c := newCart(t, line{"1000", 2})

	got := NewEngine().Apply(c)
	assert.True(t, d("2000").Equal(got))
}

func TestEngine_RuleOrderMatters(t *testing.T) {
	// A single line of 10 units at 1000: rule order changes the outcome
	// because OrderRule reads the running total while BulkRule rebuilds it.
	t.Run("bulk then order compounds", func(t *testing.T) {
		c := newCart(t, line{"1000", 10})

		got := applyRules(c, BulkRule{}, OrderRule{})
		// bulk: 10000 -> 9000; order: 9000 * 0.95 = 8550
		assert.True(t, d("8550").Equal(got), "got %s", got)
	})

	t.Run("order then bulk drops the order discount", func(t *testing.T) {
		c := newCart(t, line{"1000", 10})

		got := applyRules(c, OrderRule{}, BulkRule{})
		// order: 10000 -> 9500; bulk rebuilds from line items: 9000
		assert.True(t, d("9000").Equal(got), "got %s", got)
	})
}

// BulkRule ignores the running total and recomputes from raw line items, so
// a discount applied by an earlier rule is discarded for every
// non-qualifying line. This pins the current behaviour; fixing it would be
// a deliberate pricing change.
func TestBulkRule_DiscardsPriorDiscountOnNonQualifyingLines(t *testing.T) {
	c := newCart(t,
		line{"100", 10}, // qualifies for bulk, subtotal 1000
		line{"50", 1},   // does not qualify, subtotal 50
	)

	got := applyRules(c, OrderRule{}, BulkRule{})
	// order: 1050 -> 997.50; bulk then rebuilds: 900 + 50 = 950.
	// The 5% order discount survives nowhere.
	assert.True(t, d("950").Equal(got), "got %s", got)
}
