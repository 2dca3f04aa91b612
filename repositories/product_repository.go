package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"storefront/models"
)

// Querier is the subset of *pgxpool.Pool the repository needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// ProductRepository reads the fallback catalog from the store_products table.
type ProductRepository struct {
	db Querier
}

func NewProductRepository(db Querier) *ProductRepository {
	return &ProductRepository{db: db}
}

const listProductsQuery = `
	SELECT id, name, price::text, category, COALESCE(description, ''), COALESCE(icon, ''), COALESCE(badge, ''), disabled
	FROM store_products
	ORDER BY sort_order, id`

func (r *ProductRepository) LoadCatalog(ctx context.Context) ([]models.Product, error) {
	rows, err := r.db.Query(ctx, listProductsQuery)
	if err != nil {
		return nil, fmt.Errorf("query store products: %w", err)
	}

	products, err := pgx.CollectRows(rows, scanProduct)
	if err != nil {
		return nil, fmt.Errorf("scan store products: %w", err)
	}
	return products, nil
}

func scanProduct(row pgx.CollectableRow) (models.Product, error) {
	var p models.Product
	var price *string

	if err := row.Scan(&p.ID, &p.Name, &price, &p.Category, &p.Description, &p.Icon, &p.Badge, &p.Disabled); err != nil {
		return models.Product{}, err
	}

	parsed, err := parsePrice(price)
	if err != nil {
		return models.Product{}, fmt.Errorf("product %q: %w", p.ID, err)
	}
	p.Price = parsed
	return p, nil
}

// parsePrice maps a NULL column to the unavailable marker.
func parsePrice(raw *string) (models.Price, error) {
	if raw == nil {
		return models.UnavailablePrice(), nil
	}
	return models.PriceFromString(*raw)
}
