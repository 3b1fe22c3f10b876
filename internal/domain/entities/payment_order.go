package entities

import "time"

// Provider identifies one of the supported payment providers.
type Provider string

const (
	ProviderStripe   Provider = "stripe"
	ProviderPayPal   Provider = "paypal"
	ProviderRazorpay Provider = "razorpay"
)

// Providers lists every supported provider in registry order.
func Providers() []Provider {
	return []Provider{ProviderStripe, ProviderPayPal, ProviderRazorpay}
}

// ParseProvider maps a route/path segment to a Provider.
func ParseProvider(s string) (Provider, bool) {
	switch Provider(s) {
	case ProviderStripe, ProviderPayPal, ProviderRazorpay:
		return Provider(s), true
	}
	return "", false
}

// OrderStatus represents the canonical payment order lifecycle.
//
// Transitions are monotonic: created may move to exactly one of the four
// terminal statuses, and a terminal order never moves again.

type OrderStatus string

const (
	OrderStatusCreated    OrderStatus = "created"
	OrderStatusAuthorized OrderStatus = "authorized"
	OrderStatusCaptured   OrderStatus = "captured"
	OrderStatusVerified   OrderStatus = "verified"
	OrderStatusFailed     OrderStatus = "failed"
)

// IsTerminal reports whether no further transition is permitted.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusAuthorized, OrderStatusCaptured, OrderStatusVerified, OrderStatusFailed:
		return true
	}
	return false
}

// CanTransitionTo reports whether the lifecycle permits moving to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return s == OrderStatusCreated && next.IsTerminal()
}

// PaymentOrder is the canonical record of one provider order/intent.
//
// Storage model (DynamoDB):
//   - PK: id (provider#external_id)
//
// The externally issued id is unique per provider; a given order is created
// once by Initiate and mutated only by Finalize or a verified webhook.

type PaymentOrder struct {
	Provider          Provider    `json:"provider"`
	ExternalID        string      `json:"external_id"`
	Status            OrderStatus `json:"status"`
	Amount            string      `json:"amount"`
	Currency          string      `json:"currency"`
	ClientArtifact    string      `json:"client_artifact,omitempty"`
	ProviderReference string      `json:"provider_reference,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}
