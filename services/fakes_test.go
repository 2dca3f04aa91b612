package services

import (
	"context"
	"errors"
	"sync"

	"storefront/models"
)

type fakeFetcher struct {
	mu       sync.Mutex
	products []models.Product
	err      error
	calls    int
	gate     chan struct{}
}

func (f *fakeFetcher) FetchProducts(ctx context.Context) ([]models.Product, error) {
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.products, f.err
}

func (f *fakeFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeSubmitter struct {
	resp     *models.OrderResponse
	err      error
	payloads []models.OrderPayload
}

func (f *fakeSubmitter) SubmitOrder(ctx context.Context, payload models.OrderPayload) (*models.OrderResponse, error) {
	f.payloads = append(f.payloads, payload)
	return f.resp, f.err
}

type fakeSnapshot struct {
	saved [][]models.Product
	err   error
}

func (f *fakeSnapshot) SaveCatalog(ctx context.Context, products []models.Product) error {
	f.saved = append(f.saved, products)
	return f.err
}

type fakeSource struct {
	products []models.Product
	err      error
}

func (f *fakeSource) LoadCatalog(ctx context.Context) ([]models.Product, error) {
	return f.products, f.err
}

var errBackendDown = errors.New("backend down")

func product(id, price, category string) models.Product {
	p := models.Product{ID: id, Name: "Product " + id, Category: category}
	if price != "" {
		p.Price = models.MustPrice(price)
	}
	return p
}

func fallbackProducts() []models.Product {
	disabled := product("mystic_credits", "", "Mystic")
	disabled.Disabled = true
	return []models.Product{
		product("basic_course", "14.99", "DevStart"),
		product("raffle_ticket", "0", "Sorteios"),
		product("robux_100", "5.00", "Robux"),
		disabled,
	}
}

func seededCatalog(t interface{ Fatalf(string, ...any) }, products ...models.Product) *CatalogService {
	catalog := NewCatalogService(nil, nil, nil)
	if err := catalog.Seed(products); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return catalog
}

// gatedSubmitter signals entered when an order arrives and holds it until
// release is closed.
type gatedSubmitter struct {
	resp    *models.OrderResponse
	entered chan struct{}
	release chan struct{}

	mu       sync.Mutex
	payloads []models.OrderPayload
}

func newGatedSubmitter(resp *models.OrderResponse) *gatedSubmitter {
	return &gatedSubmitter{
		resp:    resp,
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
}

func (f *gatedSubmitter) SubmitOrder(ctx context.Context, payload models.OrderPayload) (*models.OrderResponse, error) {
	f.mu.Lock()
	f.payloads = append(f.payloads, payload)
	f.mu.Unlock()

	select {
	case f.entered <- struct{}{}:
	default:
	}
	select {
	case <-f.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return f.resp, nil
}

func (f *gatedSubmitter) Payloads() []models.OrderPayload {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.OrderPayload(nil), f.payloads...)
}
