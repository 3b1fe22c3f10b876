package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"paycore/internal/domain/entities"
	"paycore/internal/usecase/interfaces"
)

var (
	ErrUnknownProvider = errors.New("unknown payment provider")
	ErrInvalidCurrency = errors.New("invalid currency code")
)

// IPaymentUseCase is the single entry point of the payment core: initiate,
// finalize, handle webhooks. It dispatches to the matching provider adapter
// and enforces the exactly-once terminal-transition guarantee.

type IPaymentUseCase interface {
	Initiate(ctx context.Context, provider entities.Provider, req entities.CreateOrderRequest) (entities.PaymentOrder, error)
	Finalize(ctx context.Context, provider entities.Provider, req entities.FinalizeRequest) (entities.Outcome, error)
	HandleWebhook(ctx context.Context, provider entities.Provider, rawBody []byte, signatureHeader string) (entities.WebhookEvent, error)
	GetOrder(ctx context.Context, provider entities.Provider, externalID string) (entities.PaymentOrder, *entities.OrderDetails, error)
	GatewayStatus() []entities.GatewayStatus
}

type PaymentUseCase struct {
	registry interfaces.IGatewayRegistry
	orders   interfaces.IPaymentOrderStore
	records  interfaces.IIdempotencyStore
	events   interfaces.IWebhookEventStore
	locks    keyedMutex
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(registry interfaces.IGatewayRegistry, orders interfaces.IPaymentOrderStore, records interfaces.IIdempotencyStore, events interfaces.IWebhookEventStore) *PaymentUseCase {
	return &PaymentUseCase{registry: registry, orders: orders, records: records, events: events}
}

// Initiate validates the request, delegates order creation to the provider
// adapter and persists the new order in the created status.
func (u *PaymentUseCase) Initiate(ctx context.Context, provider entities.Provider, req entities.CreateOrderRequest) (entities.PaymentOrder, error) {
	log.Printf("[payment][usecase] initiate start provider=%s amount=%s currency=%s", provider, req.Amount, req.Currency)

	gw, ok := u.gateway(provider)
	if !ok {
		return entities.PaymentOrder{}, entities.ErrNotConfigured
	}
	if _, err := entities.ToMinorUnits(req.Amount); err != nil {
		log.Printf("[payment][usecase] initiate rejected provider=%s err=%v", provider, err)
		return entities.PaymentOrder{}, err
	}
	req.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	if len(req.Currency) != 3 {
		return entities.PaymentOrder{}, ErrInvalidCurrency
	}

	started := time.Now()
	result, err := gw.CreateOrder(ctx, req)
	if err != nil {
		log.Printf("[payment][usecase] initiate gateway failed provider=%s err=%v", provider, err)
		return entities.PaymentOrder{}, err
	}

	now := time.Now().UTC()
	order := entities.PaymentOrder{
		Provider:       provider,
		ExternalID:     result.ExternalID,
		Status:         entities.OrderStatusCreated,
		Amount:         req.Amount.String(),
		Currency:       req.Currency,
		ClientArtifact: result.ClientArtifact,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := u.orders.Put(ctx, order); err != nil {
		log.Printf("[payment][usecase] initiate persist failed provider=%s external_id=%s err=%v", provider, order.ExternalID, err)
		return entities.PaymentOrder{}, err
	}

	log.Printf("[payment][usecase] initiate success provider=%s external_id=%s latency_ms=%d", provider, order.ExternalID, time.Since(started).Milliseconds())
	return order, nil
}

// Finalize settles one external order exactly once. A repeat call after the
// terminal outcome was recorded returns that outcome with zero provider
// round trips; two concurrent calls are serialized and only one transition
// wins the compare-and-set.
func (u *PaymentUseCase) Finalize(ctx context.Context, provider entities.Provider, req entities.FinalizeRequest) (entities.Outcome, error) {
	unlock := u.locks.lock(string(provider) + "#" + req.OrderID)
	defer unlock()

	if rec, found, err := u.records.GetRecord(ctx, provider, req.OrderID); err != nil {
		return entities.Outcome{}, err
	} else if found {
		log.Printf("[payment][usecase] finalize replay provider=%s external_id=%s status=%s", provider, req.OrderID, rec.Status)
		return rec.Outcome(), nil
	}

	order, err := u.orders.Get(ctx, provider, req.OrderID)
	if err != nil {
		log.Printf("[payment][usecase] finalize order lookup failed provider=%s external_id=%s err=%v", provider, req.OrderID, err)
		return entities.Outcome{}, err
	}
	if order.Status.IsTerminal() {
		return entities.Outcome{Status: order.Status, ProviderReference: order.ProviderReference}, nil
	}

	gw, ok := u.gateway(provider)
	if !ok {
		return entities.Outcome{}, entities.ErrNotConfigured
	}

	started := time.Now()
	outcome, err := gw.Finalize(ctx, req)
	if err != nil {
		// Verification and transient failures leave the order non-terminal.
		log.Printf("[payment][usecase] finalize gateway failed provider=%s external_id=%s err=%v", provider, req.OrderID, err)
		return entities.Outcome{}, err
	}
	log.Printf("[payment][usecase] finalize gateway success provider=%s external_id=%s status=%s latency_ms=%d", provider, req.OrderID, outcome.Status, time.Since(started).Milliseconds())

	return u.commit(ctx, provider, req.OrderID, *outcome)
}

// HandleWebhook authenticates the raw delivery before parsing it, applies
// the transition at most once per event id, and acknowledges replays and
// post-terminal deliveries as no-ops.
func (u *PaymentUseCase) HandleWebhook(ctx context.Context, provider entities.Provider, rawBody []byte, signatureHeader string) (entities.WebhookEvent, error) {
	gw, ok := u.gateway(provider)
	if !ok {
		return entities.WebhookEvent{}, entities.ErrNotConfigured
	}

	// Nothing below may touch the payload until this passes.
	if err := gw.VerifyWebhook(rawBody, signatureHeader); err != nil {
		log.Printf("[payment][usecase] webhook rejected provider=%s err=%v", provider, err)
		return entities.WebhookEvent{}, err
	}

	event, err := gw.ParseWebhook(rawBody)
	if err != nil {
		return entities.WebhookEvent{}, err
	}
	if event.Type == entities.WebhookEventIgnored {
		log.Printf("[payment][usecase] webhook ignored provider=%s event_id=%s", provider, event.EventID)
		return *event, nil
	}

	if seen, err := u.events.WasProcessed(ctx, provider, event.EventID); err != nil {
		return entities.WebhookEvent{}, err
	} else if seen {
		log.Printf("[payment][usecase] webhook replay provider=%s event_id=%s", provider, event.EventID)
		return *event, nil
	}

	unlock := u.locks.lock(string(provider) + "#" + event.OrderID)
	defer unlock()

	order, err := u.orders.Get(ctx, provider, event.OrderID)
	if errors.Is(err, entities.ErrOrderNotFound) {
		// Acknowledge so the provider stops redelivering; nothing to apply.
		log.Printf("[payment][usecase] webhook for unknown order provider=%s order_id=%s event_id=%s", provider, event.OrderID, event.EventID)
		return *event, nil
	}
	if err != nil {
		return entities.WebhookEvent{}, err
	}
	if order.Status.IsTerminal() {
		log.Printf("[payment][usecase] webhook after terminal provider=%s order_id=%s status=%s", provider, event.OrderID, order.Status)
		return *event, nil
	}

	to, ok := event.Type.Transition()
	if !ok {
		return *event, nil
	}
	if _, err := u.commit(ctx, provider, event.OrderID, entities.Outcome{Status: to, ProviderReference: event.ProviderReference}); err != nil {
		// The event stays unrecorded so the provider's redelivery runs the
		// transition again instead of being swallowed as a replay.
		return entities.WebhookEvent{}, err
	}
	if _, err := u.events.MarkProcessed(ctx, *event); err != nil {
		// The transition is durable; a redelivery lands on the terminal
		// order and is acknowledged as a no-op either way.
		log.Printf("[payment][usecase] webhook record failed provider=%s event_id=%s err=%v", provider, event.EventID, err)
	}
	log.Printf("[payment][usecase] webhook applied provider=%s order_id=%s event_id=%s status=%s", provider, event.OrderID, event.EventID, to)
	return *event, nil
}

// GetOrder returns the stored order plus, best effort, the provider's
// current view of it.
func (u *PaymentUseCase) GetOrder(ctx context.Context, provider entities.Provider, externalID string) (entities.PaymentOrder, *entities.OrderDetails, error) {
	order, err := u.orders.Get(ctx, provider, externalID)
	if err != nil {
		return entities.PaymentOrder{}, nil, err
	}

	gw, ok := u.gateway(provider)
	if !ok {
		return order, nil, nil
	}
	details, err := gw.GetDetails(ctx, externalID)
	if err != nil {
		log.Printf("[payment][usecase] provider details unavailable provider=%s external_id=%s err=%v", provider, externalID, err)
		return order, nil, nil
	}
	return order, details, nil
}

func (u *PaymentUseCase) GatewayStatus() []entities.GatewayStatus {
	return u.registry.Status()
}

// commit moves the order to its terminal status through the store CAS and
// records the outcome. A lost CAS means another caller already settled the
// order; the stored outcome is returned instead of an error.
func (u *PaymentUseCase) commit(ctx context.Context, provider entities.Provider, externalID string, outcome entities.Outcome) (entities.Outcome, error) {
	won, err := u.orders.CompareAndSetStatus(ctx, provider, externalID, entities.OrderStatusCreated, outcome.Status, outcome.ProviderReference)
	if err != nil {
		return entities.Outcome{}, err
	}
	if !won {
		if rec, found, err := u.records.GetRecord(ctx, provider, externalID); err == nil && found {
			return rec.Outcome(), nil
		}
		order, err := u.orders.Get(ctx, provider, externalID)
		if err != nil {
			return entities.Outcome{}, err
		}
		log.Printf("[payment][usecase] transition lost race provider=%s external_id=%s status=%s", provider, externalID, order.Status)
		return entities.Outcome{Status: order.Status, ProviderReference: order.ProviderReference}, nil
	}

	stored, _, err := u.records.PutIfAbsent(ctx, entities.IdempotencyRecord{
		Provider:          provider,
		ExternalID:        externalID,
		Status:            outcome.Status,
		ProviderReference: outcome.ProviderReference,
		RecordedAt:        time.Now().UTC(),
	})
	if err != nil {
		return entities.Outcome{}, err
	}
	return stored.Outcome(), nil
}

func (u *PaymentUseCase) gateway(provider entities.Provider) (interfaces.IPaymentGateway, bool) {
	if u.registry == nil {
		return nil, false
	}
	return u.registry.Gateway(provider)
}
