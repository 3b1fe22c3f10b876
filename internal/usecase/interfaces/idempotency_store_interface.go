package interfaces

import (
	"context"

	"paycore/internal/domain/entities"
)

// IIdempotencyStore abstracts the terminal-outcome records keyed by
// (provider, external id).
//
// PutIfAbsent stores the record only when no record exists yet and returns
// the record that ended up stored, with existed=true when a prior writer
// already recorded an outcome.
type IIdempotencyStore interface {
	GetRecord(ctx context.Context, provider entities.Provider, externalID string) (entities.IdempotencyRecord, bool, error)
	PutIfAbsent(ctx context.Context, rec entities.IdempotencyRecord) (entities.IdempotencyRecord, bool, error)
}
