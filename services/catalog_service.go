package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"storefront/models"
)

// ProductFetcher retrieves the authoritative product list from the order backend.
type ProductFetcher interface {
	FetchProducts(ctx context.Context) ([]models.Product, error)
}

// CatalogSnapshotter persists a successfully fetched catalog so it can seed
// later sessions.
type CatalogSnapshotter interface {
	SaveCatalog(ctx context.Context, products []models.Product) error
}

var errMalformedCatalog = errors.New("malformed catalog")

// CatalogService holds the products known to one storefront session. It is
// seeded with a fallback catalog and replaced wholesale by at most one
// successful network refresh.
type CatalogService struct {
	fetcher  ProductFetcher
	snapshot CatalogSnapshotter
	logger   *zap.Logger

	mu       sync.RWMutex
	products map[string]models.Product
	order    []string
	loaded   bool
}

func NewCatalogService(fetcher ProductFetcher, snapshot CatalogSnapshotter, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		fetcher:  fetcher,
		snapshot: snapshot,
		logger:   logger,
		products: make(map[string]models.Product),
	}
}

// Seed installs a fallback catalog, replacing whatever was there.
func (s *CatalogService) Seed(products []models.Product) error {
	byID, order, err := indexProducts(products)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = byID
	s.order = order
	return nil
}

// Load fetches the catalog from the backend and replaces the local one. Any
// failure leaves the current catalog untouched and returns an error wrapping
// ErrCatalogUnavailable, which callers are free to ignore. Once a load has
// succeeded further calls do nothing.
func (s *CatalogService) Load(ctx context.Context) error {
	if s.Loaded() {
		return nil
	}
	if s.fetcher == nil {
		return fmt.Errorf("%w: no product fetcher configured", ErrCatalogUnavailable)
	}

	products, err := s.fetcher.FetchProducts(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}

	byID, order, err := indexProducts(products)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}

	s.mu.Lock()
	if s.loaded {
		s.mu.Unlock()
		return nil
	}
	s.products = byID
	s.order = order
	s.loaded = true
	s.mu.Unlock()

	s.logger.Debug("catalog refreshed", zap.Int("products", len(order)))

	if s.snapshot != nil {
		if err := s.snapshot.SaveCatalog(ctx, products); err != nil {
			s.logger.Warn("failed to save catalog snapshot", zap.Error(err))
		}
	}

	return nil
}

func (s *CatalogService) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *CatalogService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

func (s *CatalogService) Get(id string) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[id]
	if !ok {
		return models.Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return product, nil
}

// List returns products in load order. An empty category or "all" returns
// everything.
func (s *CatalogService) List(category string) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]models.Product, 0, len(s.order))
	for _, id := range s.order {
		product := s.products[id]
		if product.InCategory(category) {
			products = append(products, product)
		}
	}
	return products
}

// Categories returns distinct category labels in first-seen order.
func (s *CatalogService) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := []models.Category{}
	index := make(map[string]int)
	for _, id := range s.order {
		name := s.products[id].Category
		if i, ok := index[name]; ok {
			categories[i].Count++
			continue
		}
		index[name] = len(categories)
		categories = append(categories, models.Category{Name: name, Count: 1})
	}
	return categories
}

func indexProducts(products []models.Product) (map[string]models.Product, []string, error) {
	byID := make(map[string]models.Product, len(products))
	order := make([]string, 0, len(products))

	for i, product := range products {
		if product.ID == "" {
			return nil, nil, fmt.Errorf("%w: product at position %d has no id", errMalformedCatalog, i)
		}
		if _, dup := byID[product.ID]; dup {
			return nil, nil, fmt.Errorf("%w: duplicate product id %q", errMalformedCatalog, product.ID)
		}
		if product.Price.Available() && product.Price.Amount.IsNegative() {
			return nil, nil, fmt.Errorf("%w: product %q has a negative price", errMalformedCatalog, product.ID)
		}
		byID[product.ID] = product
		order = append(order, product.ID)
	}

	return byID, order, nil
}
