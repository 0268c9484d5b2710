package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopcore/checkout/internal/domain/product"
)

const (
	listProductsSQL = `SELECT sku, name, price FROM products ORDER BY sku`

	getProductBySKUSQL = `SELECT sku, name, price FROM products WHERE sku = $1`

	upsertProductSQL = `INSERT INTO products (sku, name, price) VALUES ($1, $2, $3)
		ON CONFLICT (sku) DO UPDATE SET name = EXCLUDED.name, price = EXCLUDED.price`
)

var _ product.Repository = (*ProductRepository)(nil)

// ProductRepository implements product.Repository backed by PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a ProductRepository that uses the given pool.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// GetBySKU returns a single product by its SKU.
func (r *ProductRepository) GetBySKU(ctx context.Context, sku string) (product.Product, error) {
	rows, err := r.pool.Query(ctx, getProductBySKUSQL, sku)
	if err != nil {
		return product.Product{}, fmt.Errorf("getting product %q: %w", sku, err)
	}

	p, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return product.Product{}, product.ErrNotFound
		}
		return product.Product{}, fmt.Errorf("getting product %q: %w", sku, err)
	}
	return p, nil
}

// List returns all products from the catalog ordered by SKU.
func (r *ProductRepository) List(ctx context.Context) ([]product.Product, error) {
	rows, err := r.pool.Query(ctx, listProductsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return pgx.CollectRows(rows, scanProduct)
}

// Upsert inserts or replaces a product. Last write wins, matching the
// in-memory catalog's semantics.
func (r *ProductRepository) Upsert(ctx context.Context, p product.Product) error {
	_, err := r.pool.Exec(ctx, upsertProductSQL, p.SKU, p.Name, p.Price)
	if err != nil {
		return fmt.Errorf("upserting product %q: %w", p.SKU, err)
	}
	return nil
}

func scanProduct(row pgx.CollectableRow) (product.Product, error) {
	var p product.Product
	err := row.Scan(&p.SKU, &p.Name, &p.Price)
	return p, err
}
