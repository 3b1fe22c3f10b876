package entities

import "github.com/shopspring/decimal"

// CreateOrderRequest is the canonical provider-agnostic order creation
// request. Amount is in the major currency unit; adapters convert to the
// provider's minor unit.
type CreateOrderRequest struct {
	Amount   decimal.Decimal
	Currency string
	Metadata map[string]string
}

// CreateOrderResult is what an adapter returns from order/intent creation.
// ClientArtifact is whatever the browser/client SDK needs to continue the
// flow: a Stripe client secret, a PayPal approval URL, a Razorpay order id.
type CreateOrderResult struct {
	ExternalID     string `json:"external_id"`
	ClientArtifact string `json:"client_artifact,omitempty"`
}

// FinalizeRequest carries the identifiers a provider needs to settle an
// order. Each adapter consumes the fields relevant to its flow and rejects
// requests missing them.
type FinalizeRequest struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id,omitempty"`
	Signature string `json:"signature,omitempty"`
}

// Outcome is the canonical result shape returned by any adapter finalize.
type Outcome struct {
	Status            OrderStatus `json:"status"`
	ProviderReference string      `json:"provider_reference,omitempty"`
}

// OrderDetails is a provider order mapped to the canonical read shape.
type OrderDetails struct {
	ID       string      `json:"id"`
	Status   OrderStatus `json:"status"`
	Amount   string      `json:"amount"`
	Currency string      `json:"currency"`
}

// GatewayStatus exposes provider availability. PublicIdentifier is the
// shareable half of the credential pair (publishable key, client id); the
// secret half never leaves the gateway.
type GatewayStatus struct {
	Provider         Provider `json:"provider"`
	Available        bool     `json:"available"`
	PublicIdentifier string   `json:"public_identifier,omitempty"`
}
