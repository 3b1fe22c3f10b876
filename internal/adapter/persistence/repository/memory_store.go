package repository

import (
	"context"
	"sync"
	"time"

	"paycore/internal/domain/entities"
	"paycore/internal/usecase/interfaces"
)

// MemoryStore is the in-process store implementation, selected with
// PAYMENT_STORE=memory for local runs and used as the double in tests.
// It honors the same create-only and compare-and-set semantics as the
// DynamoDB repositories.

type MemoryStore struct {
	mu         sync.Mutex
	orders     map[string]entities.PaymentOrder
	records    map[string]entities.IdempotencyRecord
	seenEvents map[string]struct{}
}

var (
	_ interfaces.IPaymentOrderStore = (*MemoryStore)(nil)
	_ interfaces.IIdempotencyStore  = (*MemoryStore)(nil)
	_ interfaces.IWebhookEventStore = (*MemoryStore)(nil)
)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		orders:     map[string]entities.PaymentOrder{},
		records:    map[string]entities.IdempotencyRecord{},
		seenEvents: map[string]struct{}{},
	}
}

func (s *MemoryStore) Get(_ context.Context, provider entities.Provider, externalID string) (entities.PaymentOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[storageKey(string(provider), externalID)]
	if !ok {
		return entities.PaymentOrder{}, entities.ErrOrderNotFound
	}
	return order, nil
}

func (s *MemoryStore) Put(_ context.Context, order entities.PaymentOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := storageKey(string(order.Provider), order.ExternalID)
	if _, exists := s.orders[key]; exists {
		return entities.ErrOrderExists
	}
	s.orders[key] = order
	return nil
}

func (s *MemoryStore) CompareAndSetStatus(_ context.Context, provider entities.Provider, externalID string, from, to entities.OrderStatus, providerReference string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := storageKey(string(provider), externalID)
	order, ok := s.orders[key]
	if !ok || order.Status != from {
		return false, nil
	}
	order.Status = to
	order.ProviderReference = providerReference
	order.UpdatedAt = time.Now().UTC()
	s.orders[key] = order
	return true, nil
}

func (s *MemoryStore) GetRecord(_ context.Context, provider entities.Provider, externalID string) (entities.IdempotencyRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[storageKey(string(provider), externalID)]
	return rec, ok, nil
}

func (s *MemoryStore) PutIfAbsent(_ context.Context, rec entities.IdempotencyRecord) (entities.IdempotencyRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := storageKey(string(rec.Provider), rec.ExternalID)
	if stored, exists := s.records[key]; exists {
		return stored, true, nil
	}
	s.records[key] = rec
	return rec, false, nil
}

func (s *MemoryStore) WasProcessed(_ context.Context, provider entities.Provider, eventID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, seen := s.seenEvents[storageKey(string(provider), eventID)]
	return seen, nil
}

func (s *MemoryStore) MarkProcessed(_ context.Context, event entities.WebhookEvent) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := storageKey(string(event.Provider), event.EventID)
	if _, seen := s.seenEvents[key]; seen {
		return false, nil
	}
	s.seenEvents[key] = struct{}{}
	return true, nil
}
