// Package inventory defines the stock-availability collaborator consulted
// by carts and the checkout service.
package inventory

import "context"

// Service reports available stock per SKU. Availability is checked but never
// decremented here: the actual stock decrement is an external system's
// responsibility.
type Service interface {
	// Available returns the quantity in stock for the given SKU,
	// 0 for unknown SKUs.
	Available(ctx context.Context, sku string) (int, error)
}

var _ Service = (*MemoryService)(nil)

// MemoryService is the in-memory reference Service implementation.
// It is not safe for concurrent use.
type MemoryService struct {
	stock map[string]int
}

// NewMemoryService creates a MemoryService with no stock.
func NewMemoryService() *MemoryService {
	return &MemoryService{stock: make(map[string]int)}
}

// SetStock sets the stock level for a SKU, replacing any previous level.
func (s *MemoryService) SetStock(sku string, quantity int) {
	s.stock[sku] = quantity
}

// Available returns the stock level for a SKU, 0 when unknown.
func (s *MemoryService) Available(_ context.Context, sku string) (int, error) {
	return s.stock[sku], nil
}
