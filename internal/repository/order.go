package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopcore/checkout/internal/domain/order"
)

const (
	saveOrderSQL = `INSERT INTO orders (id, items, total, transaction_id, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	getOrderByIDSQL = `SELECT id, items, total, transaction_id, created_at
		FROM orders WHERE id = $1`

	getAllOrdersSQL = `SELECT id, items, total, transaction_id, created_at FROM orders`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Save persists a new order. The order items are serialized to JSON for
// storage in the JSONB column.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshaling order items: %w", err)
	}

	_, err = r.pool.Exec(ctx, saveOrderSQL,
		o.ID, itemsJSON, o.Total, o.TransactionID, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving order %q: %w", o.ID, err)
	}

	return nil
}

// GetByID returns the order with the given ID, or order.ErrNotFound.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	rows, err := r.pool.Query(ctx, getOrderByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting order %q: %w", id, err)
	}

	o, err := pgx.CollectExactlyOneRow(rows, scanOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("getting order %q: %w", id, err)
	}
	return o, nil
}

// GetAll returns all saved orders.
func (r *OrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	rows, err := r.pool.Query(ctx, getAllOrdersSQL)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return pgx.CollectRows(rows, scanOrder)
}

func scanOrder(row pgx.CollectableRow) (*order.Order, error) {
	var (
		o         order.Order
		itemsJSON []byte
	)
	err := row.Scan(&o.ID, &itemsJSON, &o.Total, &o.TransactionID, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return nil, fmt.Errorf("unmarshaling order items: %w", err)
	}
	return &o, nil
}
