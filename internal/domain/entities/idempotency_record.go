package entities

import "time"

// IdempotencyRecord stores the terminal outcome of one external order.
//
// Storage model (DynamoDB, idempotency_records table):
//   - PK: id (provider#external_id)
//
// It is written exactly once, when the order first reaches a terminal
// status, and consulted before any repeat finalize/webhook processing so
// replays return the prior outcome without another provider round trip.

type IdempotencyRecord struct {
	Provider          Provider    `json:"provider"`
	ExternalID        string      `json:"external_id"`
	Status            OrderStatus `json:"status"`
	ProviderReference string      `json:"provider_reference,omitempty"`
	RecordedAt        time.Time   `json:"recorded_at"`
}

// Outcome converts the stored record back to the canonical result shape.
func (r IdempotencyRecord) Outcome() Outcome {
	return Outcome{Status: r.Status, ProviderReference: r.ProviderReference}
}
