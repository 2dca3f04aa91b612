package models

import "github.com/shopspring/decimal"

const (
	ModeFree = "free"
	ModePix  = "pix"
)

// OrderItem is one purchased unit. The order backend has no notion of
// quantity, so a line with quantity n becomes n items.
type OrderItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price Price  `json:"price"`
}

type OrderPayload struct {
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Items []OrderItem `json:"items"`
}

// Total sums the unit prices of the payload, unavailable prices as zero.
func (p OrderPayload) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range p.Items {
		total = total.Add(item.Price.OrZero())
	}
	return total
}

type Payment struct {
	QRCode       string `json:"qrCode"`
	QRCodeBase64 string `json:"qrCodeBase64,omitempty"`
}

type OrderResponse struct {
	OK      bool     `json:"ok"`
	Mode    string   `json:"mode,omitempty"`
	Payment *Payment `json:"payment,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// HasPixPayment reports whether the response carries a QR payload to display.
func (r OrderResponse) HasPixPayment() bool {
	return r.Mode == ModePix && r.Payment != nil && r.Payment.QRCode != ""
}

type CheckoutRequest struct {
	Name  string `json:"name" form:"name"`
	Email string `json:"email" form:"email"`
}

type CheckoutStatus string

const (
	CheckoutConfirmed      CheckoutStatus = "confirmed"
	CheckoutPaymentPending CheckoutStatus = "payment_pending"
	CheckoutReceived       CheckoutStatus = "received"
)

type PaymentQR struct {
	ImageSrc string `json:"image_src"`
	Code     string `json:"code"`
}

type CheckoutResult struct {
	Status  CheckoutStatus `json:"status"`
	Message string         `json:"message"`
	Mode    string         `json:"mode"`
	Payment *Payment       `json:"-"`
	QR      *PaymentQR     `json:"qr,omitempty"`
}
