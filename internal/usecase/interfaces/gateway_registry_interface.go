package interfaces

import "paycore/internal/domain/entities"

// IGatewayRegistry resolves the adapter for a provider. Registries are
// immutable after construction and safe for concurrent reads; an
// unavailable provider resolves to ok=false rather than an error.
type IGatewayRegistry interface {
	Gateway(provider entities.Provider) (IPaymentGateway, bool)
	Status() []entities.GatewayStatus
}
