package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"storefront/models"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"14.99", "R$ 14,99"},
		{"0", "R$ 0,00"},
		{"5", "R$ 5,00"},
		{"1234.5", "R$ 1.234,50"},
		{"0.005", "R$ 0,01"},
		{"1000000", "R$ 1.000.000,00"},
		{"90071992547409.93", "R$ 90.071.992.547.409,93"},
		{"-3.5", "-R$ 3,50"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBRL(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "Em breve", FormatPrice(models.UnavailablePrice()))
	assert.Equal(t, "R$ 0,00", FormatPrice(models.MustPrice("0")))
}
