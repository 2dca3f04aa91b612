package models

import (
	"bytes"
	"errors"

	"github.com/shopspring/decimal"
)

const CategoryAll = "all"

// Price is a non-negative amount, or the "unavailable" marker for products
// whose price has not been set yet. It encodes as a JSON number or null.
type Price struct {
	Amount decimal.Decimal
	Valid  bool
}

var ErrNegativePrice = errors.New("price cannot be negative")

func NewPrice(amount decimal.Decimal) Price {
	return Price{Amount: amount, Valid: true}
}

func PriceFromString(s string) (Price, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, err
	}
	if d.IsNegative() {
		return Price{}, ErrNegativePrice
	}
	return NewPrice(d), nil
}

func MustPrice(s string) Price {
	p, err := PriceFromString(s)
	if err != nil {
		panic(err)
	}
	return p
}

func UnavailablePrice() Price {
	return Price{}
}

func (p Price) Available() bool {
	return p.Valid
}

// OrZero returns the amount, treating an unavailable price as zero.
func (p Price) OrZero() decimal.Decimal {
	if !p.Valid {
		return decimal.Zero
	}
	return p.Amount
}

func (p Price) Equal(other Price) bool {
	if p.Valid != other.Valid {
		return false
	}
	return !p.Valid || p.Amount.Equal(other.Amount)
}

func (p Price) String() string {
	if !p.Valid {
		return "unavailable"
	}
	return p.Amount.StringFixed(2)
}

func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}
	return []byte(p.Amount.String()), nil
}

func (p *Price) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*p = Price{}
		return nil
	}

	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	if d.IsNegative() {
		return ErrNegativePrice
	}
	*p = NewPrice(d)
	return nil
}

type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       Price  `json:"price"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Badge       string `json:"badge"`
	Disabled    bool   `json:"disabled"`
}

// Purchasable reports whether the product may be added to a cart.
func (p Product) Purchasable() bool {
	return !p.Disabled
}

func (p Product) InCategory(category string) bool {
	return category == "" || category == CategoryAll || p.Category == category
}
