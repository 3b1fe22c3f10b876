package gateways

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"paycore/internal/domain/entities"
)

const paypalBaseURL = "https://api-m.paypal.com"

var ErrMissingPayPalCredentials = errors.New("missing PAYPAL_CLIENT_ID / PAYPAL_CLIENT_SECRET")

// PayPalGateway is the order/capture adapter. Every API call rides a
// short-lived bearer token obtained by a client-credentials exchange; the
// token lives only in process memory, is scoped to order setup and capture
// on this integration, and is never returned to callers.

type PayPalGateway struct {
	clientID     string
	clientSecret string
	webhookID    string
	baseURL      string
	httpClient   *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewPayPalGateway(clientID, clientSecret, webhookID string) (*PayPalGateway, error) {
	if clientID == "" || clientSecret == "" {
		log.Printf("[payment][paypal] missing PAYPAL_CLIENT_ID / PAYPAL_CLIENT_SECRET")
		return nil, ErrMissingPayPalCredentials
	}
	log.Printf("[payment][paypal] client initialized")
	return &PayPalGateway{
		clientID:     clientID,
		clientSecret: clientSecret,
		webhookID:    webhookID,
		baseURL:      paypalBaseURL,
		httpClient:   &http.Client{Timeout: ProviderTimeout()},
	}, nil
}

func (g *PayPalGateway) Status() entities.GatewayStatus {
	return entities.GatewayStatus{
		Provider:         entities.ProviderPayPal,
		Available:        g != nil && g.clientID != "" && g.clientSecret != "",
		PublicIdentifier: g.clientID,
	}
}

// getAccessToken exchanges client credentials for a bearer token, caching it
// until shortly before expiry. The cache is mutex-guarded: gateways are
// shared read-only across requests and this is their only mutable state.
func (g *PayPalGateway) getAccessToken(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.accessToken != "" && time.Now().Before(g.tokenExpiry) {
		return g.accessToken, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/oauth2/token", strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", fmt.Errorf("%w: %v", entities.ErrProviderUnavailable, err)
	}
	auth := base64.StdEncoding.EncodeToString([]byte(g.clientID + ":" + g.clientSecret))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Printf("[payment][paypal] token exchange failed err=%v", err)
		return "", classifyTransportError(entities.ProviderPayPal, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classifyTransportError(entities.ProviderPayPal, err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("[payment][paypal] token exchange non-success status=%d", resp.StatusCode)
		return "", classifyStatusError(entities.ProviderPayPal, resp.StatusCode, body)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", fmt.Errorf("%w: decoding token response: %v", entities.ErrProviderUnavailable, err)
	}

	g.accessToken = tokenResp.AccessToken
	g.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn-60) * time.Second)
	log.Printf("[payment][paypal] token refreshed expires_in=%d", tokenResp.ExpiresIn)

	return g.accessToken, nil
}

type paypalAmount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type paypalOrderResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	Links         []struct {
		Href string `json:"href"`
		Rel  string `json:"rel"`
	} `json:"links"`
	PurchaseUnits []struct {
		Amount   paypalAmount `json:"amount"`
		Payments struct {
			Captures []struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"captures"`
		} `json:"payments"`
	} `json:"purchase_units"`
}

func (g *PayPalGateway) CreateOrder(ctx context.Context, req entities.CreateOrderRequest) (*entities.CreateOrderResult, error) {
	if g == nil || g.clientID == "" || g.clientSecret == "" {
		return nil, entities.ErrNotConfigured
	}
	// Validate before any network call; PayPal wants the major-unit value.
	if _, err := entities.ToMinorUnits(req.Amount); err != nil {
		return nil, err
	}

	unit := map[string]any{
		"amount": paypalAmount{
			CurrencyCode: strings.ToUpper(req.Currency),
			Value:        req.Amount.StringFixed(2),
		},
	}
	if ref := req.Metadata["reference"]; ref != "" {
		unit["custom_id"] = ref
	}
	orderReq := map[string]any{
		"intent":         "CAPTURE",
		"purchase_units": []map[string]any{unit},
	}

	started := time.Now()
	order, err := g.doJSON(ctx, http.MethodPost, "/v2/checkout/orders", orderReq)
	if err != nil {
		return nil, err
	}
	log.Printf("[payment][paypal] order created order_id=%s status=%s latency_ms=%d", order.ID, order.Status, time.Since(started).Milliseconds())

	var approvalURL string
	for _, link := range order.Links {
		if link.Rel == "approve" {
			approvalURL = link.Href
			break
		}
	}
	return &entities.CreateOrderResult{ExternalID: order.ID, ClientArtifact: approvalURL}, nil
}

// Finalize captures the order after buyer approval. COMPLETED maps to
// captured; APPROVED without a completed capture maps to authorized.
func (g *PayPalGateway) Finalize(ctx context.Context, req entities.FinalizeRequest) (*entities.Outcome, error) {
	if g == nil || g.clientID == "" || g.clientSecret == "" {
		return nil, entities.ErrNotConfigured
	}
	if strings.TrimSpace(req.OrderID) == "" {
		return nil, fmt.Errorf("%w: order id is required", entities.ErrInvalidRequest)
	}

	started := time.Now()
	order, err := g.doJSON(ctx, http.MethodPost, "/v2/checkout/orders/"+url.PathEscape(req.OrderID)+"/capture", nil)
	if err != nil {
		return nil, err
	}

	reference := order.ID
	if len(order.PurchaseUnits) > 0 && len(order.PurchaseUnits[0].Payments.Captures) > 0 {
		reference = order.PurchaseUnits[0].Payments.Captures[0].ID
	}
	status := mapPayPalStatus(order.Status)
	log.Printf("[payment][paypal] capture order_id=%s provider_status=%s status=%s latency_ms=%d", order.ID, order.Status, status, time.Since(started).Milliseconds())

	if !status.IsTerminal() {
		return nil, fmt.Errorf("%w: order %s still %s", entities.ErrProviderRejected, order.ID, order.Status)
	}
	return &entities.Outcome{Status: status, ProviderReference: reference}, nil
}

func (g *PayPalGateway) GetDetails(ctx context.Context, externalID string) (*entities.OrderDetails, error) {
	if g == nil || g.clientID == "" || g.clientSecret == "" {
		return nil, entities.ErrNotConfigured
	}
	order, err := g.doJSON(ctx, http.MethodGet, "/v2/checkout/orders/"+url.PathEscape(externalID), nil)
	if err != nil {
		return nil, err
	}
	details := &entities.OrderDetails{ID: order.ID, Status: mapPayPalStatus(order.Status)}
	if len(order.PurchaseUnits) > 0 {
		details.Amount = order.PurchaseUnits[0].Amount.Value
		details.Currency = order.PurchaseUnits[0].Amount.CurrencyCode
	}
	return details, nil
}

// VerifyWebhook authenticates an inbound event through PayPal's
// verify-webhook-signature API. Without a configured webhook id the event
// is unverifiable and must be rejected, never trusted.
func (g *PayPalGateway) VerifyWebhook(body []byte, signatureHeader string) error {
	if g == nil || g.clientID == "" || g.clientSecret == "" || g.webhookID == "" {
		return entities.ErrNotConfigured
	}

	headers := parsePayPalSignatureHeader(signatureHeader)
	verifyReq := map[string]any{
		"auth_algo":         headers["auth_algo"],
		"cert_url":          headers["cert_url"],
		"transmission_id":   headers["transmission_id"],
		"transmission_sig":  headers["transmission_sig"],
		"transmission_time": headers["transmission_time"],
		"webhook_id":        g.webhookID,
		"webhook_event":     json.RawMessage(body),
	}

	ctx, cancel := context.WithTimeout(context.Background(), ProviderTimeout())
	defer cancel()

	token, err := g.getAccessToken(ctx)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(verifyReq)
	if err != nil {
		return fmt.Errorf("%w: %v", entities.ErrWebhookSignatureInvalid, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/notifications/verify-webhook-signature", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", entities.ErrProviderUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(entities.ProviderPayPal, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyTransportError(entities.ProviderPayPal, err)
	}
	if resp.StatusCode != http.StatusOK {
		return classifyStatusError(entities.ProviderPayPal, resp.StatusCode, respBody)
	}

	var verification struct {
		VerificationStatus string `json:"verification_status"`
	}
	if err := json.Unmarshal(respBody, &verification); err != nil {
		return fmt.Errorf("%w: decoding verification response: %v", entities.ErrProviderUnavailable, err)
	}
	if verification.VerificationStatus != "SUCCESS" {
		return entities.ErrWebhookSignatureInvalid
	}
	return nil
}

func (g *PayPalGateway) ParseWebhook(body []byte) (*entities.WebhookEvent, error) {
	var payload struct {
		ID        string `json:"id"`
		EventType string `json:"event_type"`
		Resource  struct {
			ID                string `json:"id"`
			SupplementaryData struct {
				RelatedIDs struct {
					OrderID string `json:"order_id"`
				} `json:"related_ids"`
			} `json:"supplementary_data"`
		} `json:"resource"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrInvalidRequest, err)
	}

	eventType := entities.WebhookEventIgnored
	switch payload.EventType {
	case "CHECKOUT.ORDER.APPROVED":
		eventType = entities.WebhookEventAuthorized
	case "PAYMENT.CAPTURE.COMPLETED":
		eventType = entities.WebhookEventCaptured
	case "PAYMENT.CAPTURE.DENIED":
		eventType = entities.WebhookEventFailed
	}

	orderID := payload.Resource.SupplementaryData.RelatedIDs.OrderID
	if orderID == "" {
		orderID = payload.Resource.ID
	}

	return &entities.WebhookEvent{
		Provider:          entities.ProviderPayPal,
		EventID:           payload.ID,
		Type:              eventType,
		OrderID:           orderID,
		ProviderReference: payload.Resource.ID,
		Verified:          true,
		RawPayload:        body,
		ReceivedAt:        time.Now().UTC(),
	}, nil
}

func (g *PayPalGateway) doJSON(ctx context.Context, method, path string, body any) (*paypalOrderResponse, error) {
	token, err := g.getAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", entities.ErrInvalidRequest, err)
		}
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrProviderUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Printf("[payment][paypal] request failed path=%s err=%v", path, err)
		return nil, classifyTransportError(entities.ProviderPayPal, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(entities.ProviderPayPal, err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Printf("[payment][paypal] non-success status path=%s status=%d", path, resp.StatusCode)
		return nil, classifyStatusError(entities.ProviderPayPal, resp.StatusCode, respBody)
	}

	var order paypalOrderResponse
	if err := json.Unmarshal(respBody, &order); err != nil {
		return nil, fmt.Errorf("%w: decoding paypal response: %v", entities.ErrProviderUnavailable, err)
	}
	return &order, nil
}

func parsePayPalSignatureHeader(header string) map[string]string {
	out := map[string]string{}
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if ok {
			out[k] = v
		}
	}
	return out
}

func mapPayPalStatus(status string) entities.OrderStatus {
	switch status {
	case "COMPLETED":
		return entities.OrderStatusCaptured
	case "APPROVED":
		return entities.OrderStatusAuthorized
	case "VOIDED":
		return entities.OrderStatusFailed
	default:
		return entities.OrderStatusCreated
	}
}
