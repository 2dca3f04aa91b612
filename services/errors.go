package services

import (
	"errors"
	"fmt"

	"storefront/models"
)

var (
	ErrProductNotFound         = errors.New("product not found")
	ErrProductUnavailable      = errors.New("product is not available for purchase")
	ErrQuantityLimitExceeded   = fmt.Errorf("quantity limit of %d items reached", models.MaxQuantity)
	ErrCatalogUnavailable      = errors.New("catalog unavailable")
	ErrOrderRejected           = errors.New("order rejected")
	ErrEmptyCart               = errors.New("cart is empty")
	ErrCustomerDetailsRequired = errors.New("customer name and email are required")
	ErrSessionNotFound         = errors.New("session not found")
)

const DefaultOrderErrorMessage = "Erro ao processar seu pedido. Tente novamente."

// OrderRejectedError is returned when the order backend does not acknowledge
// an order. Message is suitable for showing to the customer.
type OrderRejectedError struct {
	StatusCode int
	Message    string
	Cause      error
}

func NewOrderRejected(statusCode int, serverMessage string, cause error) *OrderRejectedError {
	message := serverMessage
	if message == "" {
		message = DefaultOrderErrorMessage
	}
	return &OrderRejectedError{
		StatusCode: statusCode,
		Message:    message,
		Cause:      cause,
	}
}

func (e *OrderRejectedError) Error() string {
	return e.Message
}

func (e *OrderRejectedError) Unwrap() error {
	return e.Cause
}

func (e *OrderRejectedError) Is(target error) bool {
	return target == ErrOrderRejected
}
