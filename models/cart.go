package models

import "github.com/shopspring/decimal"

const (
	MinQuantity = 1
	MaxQuantity = 99
)

// CartLine holds the product fields captured when the line was first added.
type CartLine struct {
	ProductID string `json:"id"`
	Name      string `json:"name"`
	Price     Price  `json:"price"`
	Quantity  int    `json:"quantity"`
}

func NewCartLine(p Product) CartLine {
	return CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  MinQuantity,
	}
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.OrZero().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type CartLineView struct {
	CartLine
	FormattedPrice    string `json:"formatted_price"`
	FormattedSubtotal string `json:"formatted_subtotal"`
}

type CartSummary struct {
	Lines          []CartLineView  `json:"lines"`
	Total          decimal.Decimal `json:"total"`
	FormattedTotal string          `json:"formatted_total"`
	LineCount      int             `json:"line_count"`
	ItemCount      int             `json:"item_count"`
}

type UpdateQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}
