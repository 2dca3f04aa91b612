package services

import (
	"context"

	"go.uber.org/zap"

	"storefront/models"
)

const (
	msgOrderConfirmed = "Pedido confirmado! Verifique seu e-mail para acessar o curso."
	msgPixGenerated   = "QR Code gerado com sucesso!"
	msgOrderReceived  = "Pedido recebido. Verifique seu e-mail."
)

// Checkout submits the cart and branches on the response mode. Every
// acknowledged order clears the cart, pix included, since the order is
// already recorded on the backend by then. A failed submission leaves the
// cart untouched. Run it under Session.Exec so no other command on the
// session changes the cart while the order is in flight.
func Checkout(ctx context.Context, cart *CartService, name, email string) (*models.CheckoutResult, error) {
	resp, err := cart.Submit(ctx, name, email)
	if err != nil {
		return nil, err
	}

	result := &models.CheckoutResult{Mode: resp.Mode}
	switch {
	case resp.Mode == models.ModeFree:
		result.Status = models.CheckoutConfirmed
		result.Message = msgOrderConfirmed
	case resp.HasPixPayment():
		result.Status = models.CheckoutPaymentPending
		result.Message = msgPixGenerated
		result.Payment = resp.Payment
	default:
		result.Status = models.CheckoutReceived
		result.Message = msgOrderReceived
	}

	cart.Clear()
	cart.logger.Info("order accepted", zap.String("mode", resp.Mode), zap.String("status", string(result.Status)))

	return result, nil
}
