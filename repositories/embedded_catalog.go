package repositories

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"storefront/models"
)

//go:embed data/products.json
var embeddedProducts []byte

// EmbeddedCatalog is the catalog compiled into the binary. It is always
// available, which makes it the last link of every fallback chain.
type EmbeddedCatalog struct {
	raw []byte
}

func NewEmbeddedCatalog() *EmbeddedCatalog {
	return &EmbeddedCatalog{raw: embeddedProducts}
}

func (c *EmbeddedCatalog) LoadCatalog(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := json.Unmarshal(c.raw, &products); err != nil {
		return nil, fmt.Errorf("decode embedded catalog: %w", err)
	}
	return products, nil
}
