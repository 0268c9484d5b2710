package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopcore/checkout/internal/domain/inventory"
)

const (
	getAvailableSQL = `SELECT quantity FROM inventory WHERE sku = $1`

	setStockSQL = `INSERT INTO inventory (sku, quantity) VALUES ($1, $2)
		ON CONFLICT (sku) DO UPDATE SET quantity = EXCLUDED.quantity`
)

var _ inventory.Service = (*InventoryRepository)(nil)

// InventoryRepository implements inventory.Service backed by PostgreSQL.
type InventoryRepository struct {
	pool *pgxpool.Pool
}

// NewInventoryRepository returns an InventoryRepository that uses the given pool.
func NewInventoryRepository(pool *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{pool: pool}
}

// Available returns the stock level for a SKU, 0 when the SKU has no
// inventory row.
func (r *InventoryRepository) Available(ctx context.Context, sku string) (int, error) {
	var quantity int
	err := r.pool.QueryRow(ctx, getAvailableSQL, sku).Scan(&quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("getting stock for %q: %w", sku, err)
	}
	return quantity, nil
}

// SetStock sets the stock level for a SKU, replacing any previous level.
func (r *InventoryRepository) SetStock(ctx context.Context, sku string, quantity int) error {
	_, err := r.pool.Exec(ctx, setStockSQL, sku, quantity)
	if err != nil {
		return fmt.Errorf("setting stock for %q: %w", sku, err)
	}
	return nil
}
