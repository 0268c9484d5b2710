// Package app wires the domain core to its collaborators and runs a
// scripted shopping session end to end.
package app

import (
	"context"
	"encoding/json"
	"os"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shopcore/checkout/internal/domain/cart"
	"github.com/shopcore/checkout/internal/domain/checkout"
	"github.com/shopcore/checkout/internal/domain/discount"
	"github.com/shopcore/checkout/internal/domain/inventory"
	"github.com/shopcore/checkout/internal/domain/order"
	"github.com/shopcore/checkout/internal/domain/product"
	"github.com/shopcore/checkout/internal/payment"
	"github.com/shopcore/checkout/internal/repository"
)

// seedProduct is one entry of the products seed file.
type seedProduct struct {
	SKU   string          `json:"sku"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

// sampleProducts is the built-in catalog used when no products file is
// configured.
var sampleProducts = []seedProduct{
	{SKU: "SKU001", Name: "Laptop", Price: decimal.NewFromInt(1000), Stock: 20},
	{SKU: "SKU002", Name: "Mouse", Price: decimal.NewFromInt(25), Stock: 20},
	{SKU: "SKU003", Name: "Keyboard", Price: decimal.NewFromInt(75), Stock: 20},
}

// collaborators bundles the external interfaces the cart and checkout
// service depend on.
type collaborators struct {
	catalog   product.Repository
	inventory inventory.Service
	orders    order.Repository
	close     func()
}

// Run builds the collaborators (in-memory or PostgreSQL-backed, depending
// on configuration), seeds the catalog, and drives a full shopping session:
// add items, remove one, apply discounts, charge, persist, and report.
func Run(ctx context.Context, lg *zap.Logger, cfg *Config) error {
	seed, err := loadSeed(cfg.ProductsFile)
	if err != nil {
		return errors.Wrap(err, "load products")
	}

	collab, err := buildCollaborators(ctx, cfg, seed)
	if err != nil {
		return errors.Wrap(err, "build collaborators")
	}
	defer collab.close()

	engine := discount.NewEngine()
	if cfg.Discounts.Bulk {
		engine.AddRule(discount.BulkRule{})
	}
	if cfg.Discounts.Order {
		engine.AddRule(discount.OrderRule{})
	}

	svc := checkout.NewService(payment.FakeGateway{}, collab.inventory, engine, collab.orders)

	c := cart.New(collab.catalog, collab.inventory)
	session := []struct {
		sku string
		qty int
	}{
		{seed[0].SKU, 10},
		{seed[1].SKU, 3},
		{seed[2].SKU, 1},
	}
	for _, step := range session {
		if err := c.AddItem(ctx, step.sku, step.qty); err != nil {
			return errors.Wrapf(err, "add %s", step.sku)
		}
		lg.Info("Added item", zap.String("sku", step.sku), zap.Int("quantity", step.qty))
	}

	if err := c.RemoveItem(seed[2].SKU); err != nil {
		return errors.Wrapf(err, "remove %s", seed[2].SKU)
	}
	lg.Info("Removed item", zap.String("sku", seed[2].SKU))
	lg.Info("Cart ready", zap.Int("lines", len(c.Items())), zap.String("total", c.Total().String()))

	result, err := svc.Checkout(ctx, c, cfg.PaymentToken)
	if err != nil {
		return errors.Wrap(err, "checkout")
	}
	if !result.Success {
		lg.Warn("Checkout failed", zap.String("reason", result.ErrorMessage))
		return nil
	}
	lg.Info("Checkout succeeded",
		zap.String("total", result.Total.String()),
		zap.String("transaction_id", result.TransactionID),
	)

	orders, err := collab.orders.GetAll(ctx)
	if err != nil {
		return errors.Wrap(err, "list orders")
	}
	for _, o := range orders {
		lg.Info("Stored order",
			zap.String("id", o.ID),
			zap.Int("lines", len(o.Items)),
			zap.String("total", o.Total.String()),
		)
	}

	return nil
}

func loadSeed(path string) ([]seedProduct, error) {
	if path == "" {
		return sampleProducts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read products file")
	}

	var seed []seedProduct
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, errors.Wrap(err, "parse products JSON")
	}
	if len(seed) < 3 {
		return nil, errors.New("products file must contain at least 3 products")
	}
	return seed, nil
}

func buildCollaborators(ctx context.Context, cfg *Config, seed []seedProduct) (*collaborators, error) {
	if cfg.DatabaseURL == "" {
		catalog := product.NewCatalog()
		stock := inventory.NewMemoryService()
		for _, sp := range seed {
			p, err := product.New(sp.SKU, sp.Name, sp.Price)
			if err != nil {
				return nil, errors.Wrapf(err, "product %q", sp.SKU)
			}
			catalog.Add(p)
			stock.SetStock(sp.SKU, sp.Stock)
		}
		return &collaborators{
			catalog:   catalog,
			inventory: stock,
			orders:    order.NewMemoryRepository(),
			close:     func() {},
		}, nil
	}

	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "create db pool")
	}
	if err := repository.RunMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "run migrations")
	}

	products := repository.NewProductRepository(pool)
	stock := repository.NewInventoryRepository(pool)
	for _, sp := range seed {
		p, err := product.New(sp.SKU, sp.Name, sp.Price)
		if err != nil {
			pool.Close()
			return nil, errors.Wrapf(err, "product %q", sp.SKU)
		}
		if err := products.Upsert(ctx, p); err != nil {
			pool.Close()
			return nil, err
		}
		if err := stock.SetStock(ctx, sp.SKU, sp.Stock); err != nil {
			pool.Close()
			return nil, err
		}
	}

	return &collaborators{
		catalog:   products,
		inventory: stock,
		orders:    repository.NewOrderRepository(pool),
		close:     pool.Close,
	}, nil
}
