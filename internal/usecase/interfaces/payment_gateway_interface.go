package interfaces

import (
	"context"

	"paycore/internal/domain/entities"
)

// IPaymentGateway abstracts one external payment provider behind the
// canonical contract. Implementations are stateless translators: they never
// persist orders and they map every provider failure into the domain error
// taxonomy before returning.
//
// CreateOrder and Finalize fail with entities.ErrNotConfigured before any
// network call when credentials are absent, and with
// entities.ErrInvalidAmount / entities.ErrInvalidRequest before any network
// call on bad input.
type IPaymentGateway interface {
	CreateOrder(ctx context.Context, req entities.CreateOrderRequest) (*entities.CreateOrderResult, error)
	Finalize(ctx context.Context, req entities.FinalizeRequest) (*entities.Outcome, error)
	GetDetails(ctx context.Context, externalID string) (*entities.OrderDetails, error)
	Status() entities.GatewayStatus

	// VerifyWebhook authenticates the raw body against the signature header
	// before anything parses or trusts the payload.
	VerifyWebhook(body []byte, signatureHeader string) error
	// ParseWebhook maps an already-verified payload to a canonical event.
	ParseWebhook(body []byte) (*entities.WebhookEvent, error)
}
