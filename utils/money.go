package utils

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"storefront/models"
)

const (
	PriceUnavailableLabel = "Em breve"
	brDecimalSeparator    = ","
)

var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL formats an amount as Brazilian reais, e.g. "R$ 1.234,50". The
// whole part is grouped by the pt-BR printer and the cents come straight from
// the decimal, so no float conversion is involved.
func FormatBRL(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}

	units := rounded.Truncate(0)
	cents := rounded.Sub(units).Shift(2).IntPart()

	return fmt.Sprintf("%sR$ %s%s%02d",
		sign,
		brPrinter.Sprint(number.Decimal(units.IntPart())),
		brDecimalSeparator,
		cents,
	)
}

// FormatPrice is FormatBRL with a label for prices that are not set yet.
func FormatPrice(price models.Price) string {
	if !price.Available() {
		return PriceUnavailableLabel
	}
	return FormatBRL(price.Amount)
}
