package interfaces

import (
	"context"

	"paycore/internal/domain/entities"
)

// IPaymentOrderStore abstracts persistence for PaymentOrder, keyed by
// (provider, external id).
//
// Put is create-only and returns entities.ErrOrderExists on a duplicate.
// CompareAndSetStatus is the serialization point for terminal transitions:
// it succeeds only when the stored status still equals from, so two
// concurrent finalizers cannot both win.
type IPaymentOrderStore interface {
	Get(ctx context.Context, provider entities.Provider, externalID string) (entities.PaymentOrder, error)
	Put(ctx context.Context, order entities.PaymentOrder) error
	CompareAndSetStatus(ctx context.Context, provider entities.Provider, externalID string, from, to entities.OrderStatus, providerReference string) (bool, error)
}
