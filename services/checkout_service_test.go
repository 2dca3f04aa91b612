package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/models"
)

func TestCheckoutOutcomes(t *testing.T) {
	pix := &models.Payment{QRCode: "00020126PIX"}

	tests := []struct {
		name        string
		resp        *models.OrderResponse
		wantStatus  models.CheckoutStatus
		wantMessage string
		wantPayment *models.Payment
	}{
		{
			name:        "free order",
			resp:        &models.OrderResponse{OK: true, Mode: models.ModeFree},
			wantStatus:  models.CheckoutConfirmed,
			wantMessage: msgOrderConfirmed,
		},
		{
			name:        "pix with qr code",
			resp:        &models.OrderResponse{OK: true, Mode: models.ModePix, Payment: pix},
			wantStatus:  models.CheckoutPaymentPending,
			wantMessage: msgPixGenerated,
			wantPayment: pix,
		},
		{
			name:        "pix without payment",
			resp:        &models.OrderResponse{OK: true, Mode: models.ModePix},
			wantStatus:  models.CheckoutReceived,
			wantMessage: msgOrderReceived,
		},
		{
			name:        "unknown mode",
			resp:        &models.OrderResponse{OK: true, Mode: "boleto"},
			wantStatus:  models.CheckoutReceived,
			wantMessage: msgOrderReceived,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := newTestCart(t, &fakeSubmitter{resp: tt.resp})
			_, err := cart.Add("basic_course")
			require.NoError(t, err)

			result, err := Checkout(context.Background(), cart, "Ana", "ana@example.com")

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, result.Status)
			assert.Equal(t, tt.wantMessage, result.Message)
			assert.Equal(t, tt.resp.Mode, result.Mode)
			assert.Equal(t, tt.wantPayment, result.Payment)
			assert.True(t, cart.IsEmpty())
		})
	}
}

func TestCheckoutFailureKeepsCart(t *testing.T) {
	cart := newTestCart(t, &fakeSubmitter{resp: &models.OrderResponse{OK: false, Error: "X"}})
	_, _ = cart.Add("basic_course")
	_, _ = cart.Add("robux_100")

	result, err := Checkout(context.Background(), cart, "Ana", "ana@example.com")

	assert.Nil(t, result)
	require.ErrorIs(t, err, ErrOrderRejected)
	assert.Equal(t, "X", err.Error())
	assert.Equal(t, 2, cart.Len())
}

func TestCheckoutMissingDetails(t *testing.T) {
	submitter := &fakeSubmitter{resp: &models.OrderResponse{OK: true}}
	cart := newTestCart(t, submitter)
	_, _ = cart.Add("basic_course")

	_, err := Checkout(context.Background(), cart, "", "ana@example.com")

	assert.ErrorIs(t, err, ErrCustomerDetailsRequired)
	assert.Empty(t, submitter.payloads)
	assert.Equal(t, 1, cart.Len())
}
