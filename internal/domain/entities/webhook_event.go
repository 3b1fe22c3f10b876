package entities

import (
	"encoding/json"
	"time"
)

// WebhookEventType is the canonical classification of a provider event.
type WebhookEventType string

const (
	WebhookEventAuthorized WebhookEventType = "authorized"
	WebhookEventCaptured   WebhookEventType = "captured"
	WebhookEventFailed     WebhookEventType = "failed"
	WebhookEventIgnored    WebhookEventType = "ignored"
)

// Transition maps the event classification to the order status it applies.
// Ignored events map to no transition.
func (t WebhookEventType) Transition() (OrderStatus, bool) {
	switch t {
	case WebhookEventAuthorized:
		return OrderStatusAuthorized, true
	case WebhookEventCaptured:
		return OrderStatusCaptured, true
	case WebhookEventFailed:
		return OrderStatusFailed, true
	}
	return "", false
}

// WebhookEvent is a provider-initiated callback after its signature has
// been verified against the raw body.
//
// Storage model (DynamoDB, webhook_events table):
//   - PK: id (provider#event_id)
//
// A given (provider, EventID) pair is applied at most once; RawPayload is
// kept verbatim for traceability.

type WebhookEvent struct {
	Provider          Provider         `json:"provider"`
	EventID           string           `json:"event_id"`
	Type              WebhookEventType `json:"type"`
	OrderID           string           `json:"order_id"`
	ProviderReference string           `json:"provider_reference,omitempty"`
	Verified          bool             `json:"verified"`
	RawPayload        json.RawMessage  `json:"raw_payload,omitempty"`
	ReceivedAt        time.Time        `json:"received_at"`
}
