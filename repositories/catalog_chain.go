package repositories

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"storefront/models"
	"storefront/services"
)

// CatalogChain asks each source in turn and returns the first catalog that
// loads and is not empty.
type CatalogChain struct {
	sources []services.CatalogSource
	logger  *zap.Logger
}

func NewCatalogChain(logger *zap.Logger, sources ...services.CatalogSource) *CatalogChain {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogChain{sources: sources, logger: logger}
}

func (c *CatalogChain) LoadCatalog(ctx context.Context) ([]models.Product, error) {
	var errs []error
	for _, source := range c.sources {
		products, err := source.LoadCatalog(ctx)
		if err != nil {
			errs = append(errs, err)
			if !errors.Is(err, ErrNoSnapshot) {
				c.logger.Warn("catalog source failed", zap.Error(err))
			}
			continue
		}
		if len(products) == 0 {
			continue
		}
		return products, nil
	}

	if len(errs) == 0 {
		return []models.Product{}, nil
	}
	return nil, errors.Join(errs...)
}
