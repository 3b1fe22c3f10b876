package response

import (
	"time"

	"paycore/internal/domain/entities"
)

type OrderCreatedResponse struct {
	Provider       string `json:"provider"`
	ExternalID     string `json:"external_id"`
	ClientArtifact string `json:"client_artifact,omitempty"`
	Status         string `json:"status"`
}

func FromCreatedOrder(o entities.PaymentOrder) OrderCreatedResponse {
	return OrderCreatedResponse{
		Provider:       string(o.Provider),
		ExternalID:     o.ExternalID,
		ClientArtifact: o.ClientArtifact,
		Status:         string(o.Status),
	}
}

type OutcomeResponse struct {
	Status            string `json:"status"`
	ProviderReference string `json:"provider_reference,omitempty"`
}

func FromOutcome(o entities.Outcome) OutcomeResponse {
	return OutcomeResponse{Status: string(o.Status), ProviderReference: o.ProviderReference}
}

type VerifyResponse struct {
	Verified          bool   `json:"verified"`
	Status            string `json:"status"`
	ProviderReference string `json:"provider_reference,omitempty"`
}

func FromVerification(o entities.Outcome) VerifyResponse {
	return VerifyResponse{
		Verified:          o.Status.IsTerminal() && o.Status != entities.OrderStatusFailed,
		Status:            string(o.Status),
		ProviderReference: o.ProviderReference,
	}
}

type OrderResponse struct {
	Provider          string        `json:"provider"`
	ExternalID        string        `json:"external_id"`
	Status            string        `json:"status"`
	Amount            string        `json:"amount"`
	Currency          string        `json:"currency"`
	ProviderReference string        `json:"provider_reference,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
	ProviderDetails   *OrderDetails `json:"provider_details,omitempty"`
}

type OrderDetails struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

func FromPaymentOrder(o entities.PaymentOrder, details *entities.OrderDetails) OrderResponse {
	resp := OrderResponse{
		Provider:          string(o.Provider),
		ExternalID:        o.ExternalID,
		Status:            string(o.Status),
		Amount:            o.Amount,
		Currency:          o.Currency,
		ProviderReference: o.ProviderReference,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
	if details != nil {
		resp.ProviderDetails = &OrderDetails{
			ID:       details.ID,
			Status:   string(details.Status),
			Amount:   details.Amount,
			Currency: details.Currency,
		}
	}
	return resp
}

type GatewayStatusResponse struct {
	Provider         string `json:"provider"`
	Available        bool   `json:"available"`
	PublicIdentifier string `json:"public_identifier,omitempty"`
}

func FromGatewayStatuses(statuses []entities.GatewayStatus) []GatewayStatusResponse {
	out := make([]GatewayStatusResponse, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, GatewayStatusResponse{
			Provider:         string(s.Provider),
			Available:        s.Available,
			PublicIdentifier: s.PublicIdentifier,
		})
	}
	return out
}

type WebhookAckResponse struct {
	Received bool `json:"received"`
}
