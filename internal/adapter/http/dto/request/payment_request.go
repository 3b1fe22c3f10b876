package request

import "github.com/shopspring/decimal"

// CreateOrderRequest is the payload for the order creation route. Amount is
// in the major currency unit and must be positive with at most two decimal
// places; metadata is forwarded to the provider as-is.

type CreateOrderRequest struct {
	Amount   decimal.Decimal   `json:"amount" binding:"required"`
	Currency string            `json:"currency" binding:"required,len=3"`
	Metadata map[string]string `json:"metadata"`
}

// VerifyOrderRequest carries the client-side payment identifiers for the
// HMAC verification route.

type VerifyOrderRequest struct {
	PaymentID string `json:"payment_id" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}
