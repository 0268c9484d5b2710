package app

import (
	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the demo driver configuration, loadable from environment
// variables (CHECKOUT_ prefix), flags, or YAML config files.
type Config struct {
	DatabaseURL  string `usage:"optional PostgreSQL URL; in-memory collaborators are used when empty" flag:"database-url"`
	ProductsFile string `default:"" usage:"optional products JSON file; a built-in sample catalog is used when empty" flag:"products-file"`
	PaymentToken string `default:"DEMO-TOKEN" usage:"payment token charged by the demo checkout" flag:"payment-token"`
	Discounts    DiscountConfig
}

// DiscountConfig toggles the rules registered with the discount engine.
// Registration order is bulk first, then order, matching production pricing.
type DiscountConfig struct {
	Bulk  bool `default:"true" usage:"enable the bulk line-item discount (10% off lines with 10+ units)"`
	Order bool `default:"true" usage:"enable the whole-order discount (5% off totals of 1000+)"`
}

// LoadConfig loads configuration from environment variables, flags, and
// YAML config files.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "CHECKOUT",
		Files:     []string{"config.yaml", "/etc/checkout/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	return &cfg, nil
}
