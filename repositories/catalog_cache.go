package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront/models"
)

const CatalogSnapshotKey = "store:catalog:snapshot"

var ErrNoSnapshot = errors.New("no catalog snapshot")

// CatalogCache keeps the last catalog fetched from the order backend in
// Redis, so new sessions start from it instead of the compiled-in list.
type CatalogCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{client: client, key: CatalogSnapshotKey, ttl: ttl}
}

func (c *CatalogCache) LoadCatalog(ctx context.Context) ([]models.Product, error) {
	cached, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog snapshot: %w", err)
	}

	var products []models.Product
	if err := json.Unmarshal(cached, &products); err != nil {
		return nil, fmt.Errorf("decode catalog snapshot: %w", err)
	}
	return products, nil
}

func (c *CatalogCache) SaveCatalog(ctx context.Context, products []models.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("encode catalog snapshot: %w", err)
	}
	if err := c.client.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("write catalog snapshot: %w", err)
	}
	return nil
}
