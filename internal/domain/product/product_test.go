package product

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		sku     string
		pname   string
		price   decimal.Decimal
		wantErr error
	}{
		{
			name:  "valid product",
			sku:   "SKU001",
			pname: "Laptop",
			price: decimal.RequireFromString("999.99"),
		},
		{
			name:  "zero price is valid",
			sku:   "SKU002",
			pname: "Freebie",
			price: decimal.Zero,
		},
		{
			name:    "empty sku",
			sku:     "",
			pname:   "Laptop",
			price:   decimal.NewFromInt(10),
			wantErr: ErrEmptySKU,
		},
		{
			name:    "empty name",
			sku:     "SKU001",
			pname:   "",
			price:   decimal.NewFromInt(10),
			wantErr: ErrEmptyName,
		},
		{
			name:    "negative price",
			sku:     "SKU001",
			pname:   "Laptop",
			price:   decimal.RequireFromString("-10.00"),
			wantErr: ErrNegativePrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.sku, tt.pname, tt.price)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.sku, p.SKU)
			assert.Equal(t, tt.pname, p.Name)
			assert.True(t, tt.price.Equal(p.Price))
		})
	}
}

func TestEqual(t *testing.T) {
	a, err := New("SKU001", "Laptop", decimal.NewFromInt(1000))
	require.NoError(t, err)
	b, err := New("SKU001", "Laptop Pro", decimal.NewFromInt(1500))
	require.NoError(t, err)
	c, err := New("SKU002", "Laptop", decimal.NewFromInt(1000))
	require.NoError(t, err)

	assert.True(t, a.Equal(b), "identity is the SKU, not name or price")
	assert.False(t, a.Equal(c))
}

func TestCatalog(t *testing.T) {
	ctx := context.Background()

	t.Run("get missing sku returns ErrNotFound", func(t *testing.T) {
		c := NewCatalog()

		_, err := c.GetBySKU(ctx, "MISSING")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("add and get", func(t *testing.T) {
		c := NewCatalog()
		p, err := New("SKU001", "Laptop", decimal.NewFromInt(1000))
		require.NoError(t, err)
		c.Add(p)

		got, err := c.GetBySKU(ctx, "SKU001")
		require.NoError(t, err)
		assert.True(t, got.Equal(p))
		assert.Equal(t, "Laptop", got.Name)
	})

	t.Run("duplicate sku overwrites", func(t *testing.T) {
		c := NewCatalog()
		first, err := New("SKU001", "Laptop", decimal.NewFromInt(1000))
		require.NoError(t, err)
		second, err := New("SKU001", "Laptop Pro", decimal.NewFromInt(1500))
		require.NoError(t, err)

		c.Add(first)
		c.Add(second)

		got, err := c.GetBySKU(ctx, "SKU001")
		require.NoError(t, err)
		assert.Equal(t, "Laptop Pro", got.Name)
		assert.True(t, decimal.NewFromInt(1500).Equal(got.Price))

		list, err := c.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("list preserves first-add order", func(t *testing.T) {
		c := NewCatalog()
		for _, sku := range []string{"SKU003", "SKU001", "SKU002"} {
			p, err := New(sku, "Item "+sku, decimal.NewFromInt(1))
			require.NoError(t, err)
			c.Add(p)
		}

		list, err := c.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "SKU003", list[0].SKU)
		assert.Equal(t, "SKU001", list[1].SKU)
		assert.Equal(t, "SKU002", list[2].SKU)
	})
}
