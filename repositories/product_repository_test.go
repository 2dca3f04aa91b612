package repositories

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/models"
)

// memRows serves fixed rows through the pgx.Rows interface. Each row holds
// the columns of listProductsQuery in order; a nil price is a NULL column.
type memRows struct {
	rows   [][]any
	pos    int
	closed bool
}

func (r *memRows) Close() { r.closed = true }
func (r *memRows) Err() error { return nil }
func (r *memRows) CommandTag() pgconn.CommandTag { return pgconn.NewCommandTag("SELECT") }
func (r *memRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *memRows) RawValues() [][]byte { return nil }
func (r *memRows) Conn() *pgx.Conn { return nil }

func (r *memRows) Next() bool {
	if r.closed || r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *memRows) Values() ([]any, error) {
	return r.rows[r.pos-1], nil
}

func (r *memRows) Scan(dest ...any) error {
	row := r.rows[r.pos-1]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: %d destinations for %d columns", len(dest), len(row))
	}
	for i, value := range row {
		switch d := dest[i].(type) {
		case *string:
			*d = value.(string)
		case **string:
			if value == nil {
				*d = nil
				continue
			}
			v := value.(string)
			*d = &v
		case *bool:
			*d = value.(bool)
		default:
			return fmt.Errorf("scan: unsupported destination %T", dest[i])
		}
	}
	return nil
}

type memQuerier struct {
	rows *memRows
	sql  string
}

func (q *memQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.sql = sql
	return q.rows, nil
}

func TestProductRepositoryLoadCatalog(t *testing.T) {
	rows := &memRows{rows: [][]any{
		{"basic_course", "Curso de Programação Básica", "14.99", "DevStart", "Acesso vitalício", "fas fa-laptop-code", "Curso Completo", false},
		{"mystic_credits", "Créditos Mystic", nil, "Mystic", "", "", "Em breve", true},
	}}
	querier := &memQuerier{rows: rows}

	products, err := NewProductRepository(querier).LoadCatalog(context.Background())

	require.NoError(t, err)
	assert.Equal(t, listProductsQuery, querier.sql)
	assert.True(t, rows.closed)
	require.Len(t, products, 2)

	assert.Equal(t, "basic_course", products[0].ID)
	assert.Equal(t, "14.99", products[0].Price.String())
	assert.Equal(t, "fas fa-laptop-code", products[0].Icon)
	assert.False(t, products[0].Disabled)

	assert.Equal(t, "mystic_credits", products[1].ID)
	assert.False(t, products[1].Price.Available())
	assert.True(t, products[1].Disabled)
}

func TestProductRepositoryRejectsNegativePrice(t *testing.T) {
	rows := &memRows{rows: [][]any{
		{"broken", "Broken", "-1", "x", "", "", "", false},
	}}

	products, err := NewProductRepository(&memQuerier{rows: rows}).LoadCatalog(context.Background())

	assert.Nil(t, products)
	assert.ErrorIs(t, err, models.ErrNegativePrice)
}

type failingQuerier struct{ err error }

func (q failingQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, q.err
}

func TestProductRepositoryQueryError(t *testing.T) {
	repo := NewProductRepository(failingQuerier{err: errDatabaseDown})

	products, err := repo.LoadCatalog(context.Background())

	assert.Nil(t, products)
	assert.ErrorIs(t, err, errDatabaseDown)
}

func TestParsePrice(t *testing.T) {
	p, err := parsePrice(nil)
	require.NoError(t, err)
	assert.False(t, p.Available())

	raw := "14.99"
	p, err = parsePrice(&raw)
	require.NoError(t, err)
	assert.True(t, p.Equal(models.MustPrice("14.99")))

	negative := "-1.00"
	_, err = parsePrice(&negative)
	assert.True(t, errors.Is(err, models.ErrNegativePrice))
}
