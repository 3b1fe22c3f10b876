package interfaces

import (
	"context"

	"paycore/internal/domain/entities"
)

// IWebhookEventStore enforces at-most-once application of webhook events.
//
// WasProcessed reports whether the event keyed by (provider, event id) was
// already recorded. MarkProcessed records it and reports firstTime=false
// when another writer got there first. Callers record the event only after
// its business effects are durable, so a delivery that failed mid-way is
// retried in full on the next attempt.
type IWebhookEventStore interface {
	WasProcessed(ctx context.Context, provider entities.Provider, eventID string) (bool, error)
	MarkProcessed(ctx context.Context, event entities.WebhookEvent) (firstTime bool, err error)
}
