// Package product defines the catalog product value object and the
// in-memory catalog carts price their line items against.
package product

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Sentinel errors for catalog lookups and product construction.
var (
	// ErrNotFound is returned when a requested product does not exist.
	ErrNotFound = errors.New("product not found")

	ErrEmptySKU      = errors.New("sku is required")
	ErrEmptyName     = errors.New("name is required")
	ErrNegativePrice = errors.New("price must be non-negative")
)

// Product represents a catalog item available for purchase. It is a value
// object: construct it via New and never mutate it afterwards.
type Product struct {
	SKU   string
	Name  string
	Price decimal.Decimal
}

// New validates the given fields and returns a Product. The SKU and name
// must be non-empty and the price non-negative.
func New(sku, name string, price decimal.Decimal) (Product, error) {
	if sku == "" {
		return Product{}, ErrEmptySKU
	}
	if name == "" {
		return Product{}, ErrEmptyName
	}
	if price.IsNegative() {
		return Product{}, ErrNegativePrice
	}

	return Product{SKU: sku, Name: name, Price: price}, nil
}

// Equal reports whether two products are the same catalog entry.
// Product identity is the SKU.
func (p Product) Equal(other Product) bool {
	return p.SKU == other.SKU
}

// Repository defines read operations for the product catalog.
type Repository interface {
	GetBySKU(ctx context.Context, sku string) (Product, error)
	List(ctx context.Context) ([]Product, error)
}

var _ Repository = (*Catalog)(nil)

// Catalog is the in-memory reference Repository. It owns a sku -> Product
// mapping; adding a product with an existing SKU overwrites the old entry.
// A Catalog is not safe for concurrent use.
type Catalog struct {
	skus     []string
	products map[string]Product
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{products: make(map[string]Product)}
}

// Add registers a product. Last write wins for duplicate SKUs.
func (c *Catalog) Add(p Product) {
	if _, ok := c.products[p.SKU]; !ok {
		c.skus = append(c.skus, p.SKU)
	}
	c.products[p.SKU] = p
}

// GetBySKU returns the product for the given SKU, or ErrNotFound.
func (c *Catalog) GetBySKU(_ context.Context, sku string) (Product, error) {
	p, ok := c.products[sku]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

// List returns all products in the order they were first added.
func (c *Catalog) List(_ context.Context) ([]Product, error) {
	out := make([]Product, 0, len(c.skus))
	for _, sku := range c.skus {
		out = append(out, c.products[sku])
	}
	return out, nil
}
