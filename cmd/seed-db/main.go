package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/shopcore/checkout/internal/domain/product"
	"github.com/shopcore/checkout/internal/repository"
)

const seedConcurrency = 8

type productJSON struct {
	SKU   string          `json:"sku"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

func main() {
	var (
		databaseURL  string
		productsFile string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&productsFile, "products-file", "db/seed/products.json", "path to products JSON file")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, productsFile); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, productsFile string) error {
	slog.Info("connecting to database")

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	seed, err := readProducts(productsFile)
	if err != nil {
		return errors.Wrap(err, "read products")
	}

	products := repository.NewProductRepository(pool)
	stock := repository.NewInventoryRepository(pool)

	// Products first: the inventory table references products by SKU.
	if err := seedProducts(ctx, products, seed); err != nil {
		return errors.Wrap(err, "seed products")
	}
	if err := seedStock(ctx, stock, seed); err != nil {
		return errors.Wrap(err, "seed stock")
	}

	slog.Info("seeded", slog.Int("products", len(seed)))
	return nil
}

func readProducts(path string) ([]productJSON, error) {
	slog.Info("reading products file", slog.String("path", path))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read products file")
	}

	var seed []productJSON
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, errors.Wrap(err, "parse products JSON")
	}
	return seed, nil
}

func seedProducts(ctx context.Context, repo *repository.ProductRepository, seed []productJSON) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(seedConcurrency)

	for _, pj := range seed {
		pj := pj
		g.Go(func() error {
			p, err := product.New(pj.SKU, pj.Name, pj.Price)
			if err != nil {
				return errors.Wrapf(err, "product %q", pj.SKU)
			}
			return repo.Upsert(ctx, p)
		})
	}
	return g.Wait()
}

func seedStock(ctx context.Context, repo *repository.InventoryRepository, seed []productJSON) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(seedConcurrency)

	for _, pj := range seed {
		pj := pj
		g.Go(func() error {
			return repo.SetStock(ctx, pj.SKU, pj.Stock)
		})
	}
	return g.Wait()
}
