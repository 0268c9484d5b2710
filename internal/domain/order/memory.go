package order

import "context"

var _ Repository = (*MemoryRepository)(nil)

// MemoryRepository is the in-memory reference Repository, keyed by order ID
// with no indexing beyond exact-ID lookup. It is not safe for concurrent
// use.
type MemoryRepository struct {
	orders map[string]*Order
}

// NewMemoryRepository creates an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{orders: make(map[string]*Order)}
}

// Save stores the order under its ID.
func (r *MemoryRepository) Save(_ context.Context, o *Order) error {
	r.orders[o.ID] = o
	return nil
}

// GetByID returns the order with the given ID, or ErrNotFound.
func (r *MemoryRepository) GetByID(_ context.Context, id string) (*Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return o, nil
}

// GetAll returns all saved orders.
func (r *MemoryRepository) GetAll(_ context.Context) ([]*Order, error) {
	out := make([]*Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o)
	}
	return out, nil
}
