package gateways

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"paycore/internal/domain/entities"
)

const razorpayBaseURL = "https://api.razorpay.com"

var ErrMissingRazorpayKeys = errors.New("missing RAZORPAY_KEY_ID / RAZORPAY_KEY_SECRET")

// RazorpayGateway is the order + HMAC-verification adapter. CreateOrder
// opens an order. Finalize never calls the provider: it recomputes
// HMAC-SHA256(key_secret, orderID + "|" + paymentID) and compares it with
// the client-supplied signature.

type RazorpayGateway struct {
	keyID         string
	keySecret     string
	webhookSecret string
	baseURL       string
	httpClient    *http.Client
}

func NewRazorpayGateway(keyID, keySecret, webhookSecret string) (*RazorpayGateway, error) {
	if keyID == "" || keySecret == "" {
		log.Printf("[payment][razorpay] missing RAZORPAY_KEY_ID / RAZORPAY_KEY_SECRET")
		return nil, ErrMissingRazorpayKeys
	}
	log.Printf("[payment][razorpay] client initialized")
	return &RazorpayGateway{
		keyID:         keyID,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
		baseURL:       razorpayBaseURL,
		httpClient:    &http.Client{Timeout: ProviderTimeout()},
	}, nil
}

func (g *RazorpayGateway) Status() entities.GatewayStatus {
	return entities.GatewayStatus{
		Provider:         entities.ProviderRazorpay,
		Available:        g != nil && g.keyID != "" && g.keySecret != "",
		PublicIdentifier: g.keyID,
	}
}

type razorpayOrder struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, req entities.CreateOrderRequest) (*entities.CreateOrderResult, error) {
	if g == nil || g.keyID == "" || g.keySecret == "" {
		return nil, entities.ErrNotConfigured
	}
	minor, err := entities.ToMinorUnits(req.Amount)
	if err != nil {
		return nil, err
	}

	body := map[string]any{
		"amount":   minor,
		"currency": strings.ToUpper(req.Currency),
		"receipt":  "rcpt_" + uuid.NewString(),
	}
	if len(req.Metadata) > 0 {
		body["notes"] = req.Metadata
	}

	started := time.Now()
	order, err := g.doJSON(ctx, http.MethodPost, "/v1/orders", body)
	if err != nil {
		return nil, err
	}
	log.Printf("[payment][razorpay] order created order_id=%s status=%s latency_ms=%d", order.ID, order.Status, time.Since(started).Milliseconds())

	// The order id itself is what Razorpay Checkout needs on the client.
	return &entities.CreateOrderResult{ExternalID: order.ID, ClientArtifact: order.ID}, nil
}

// Finalize verifies the payment signature locally; no provider round trip.
// On mismatch the order must remain non-terminal.
func (g *RazorpayGateway) Finalize(_ context.Context, req entities.FinalizeRequest) (*entities.Outcome, error) {
	if g == nil || g.keyID == "" || g.keySecret == "" {
		return nil, entities.ErrNotConfigured
	}
	if strings.TrimSpace(req.OrderID) == "" || strings.TrimSpace(req.PaymentID) == "" || strings.TrimSpace(req.Signature) == "" {
		return nil, fmt.Errorf("%w: order id, payment id and signature are required", entities.ErrInvalidRequest)
	}

	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(req.OrderID))
	mac.Write([]byte("|"))
	mac.Write([]byte(req.PaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(req.Signature)) {
		log.Printf("[payment][razorpay] signature mismatch order_id=%s payment_id=%s", req.OrderID, req.PaymentID)
		return nil, entities.ErrVerificationFailed
	}

	log.Printf("[payment][razorpay] signature verified order_id=%s payment_id=%s", req.OrderID, req.PaymentID)
	return &entities.Outcome{Status: entities.OrderStatusVerified, ProviderReference: req.PaymentID}, nil
}

func (g *RazorpayGateway) GetDetails(ctx context.Context, externalID string) (*entities.OrderDetails, error) {
	if g == nil || g.keyID == "" || g.keySecret == "" {
		return nil, entities.ErrNotConfigured
	}
	order, err := g.doJSON(ctx, http.MethodGet, "/v1/orders/"+url.PathEscape(externalID), nil)
	if err != nil {
		return nil, err
	}
	return &entities.OrderDetails{
		ID:       order.ID,
		Status:   mapRazorpayStatus(order.Status),
		Amount:   entities.FromMinorUnits(order.Amount).String(),
		Currency: order.Currency,
	}, nil
}

// VerifyWebhook recomputes HMAC-SHA256(webhook_secret, body) and compares
// it with the X-Razorpay-Signature header value.
func (g *RazorpayGateway) VerifyWebhook(body []byte, signatureHeader string) error {
	if g == nil || g.webhookSecret == "" {
		return entities.ErrNotConfigured
	}
	mac := hmac.New(sha256.New, []byte(g.webhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(strings.TrimSpace(signatureHeader))) {
		return entities.ErrWebhookSignatureInvalid
	}
	return nil
}

func (g *RazorpayGateway) ParseWebhook(body []byte) (*entities.WebhookEvent, error) {
	var payload struct {
		Event   string `json:"event"`
		Payload struct {
			Payment struct {
				Entity struct {
					ID      string `json:"id"`
					OrderID string `json:"order_id"`
				} `json:"entity"`
			} `json:"payment"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrInvalidRequest, err)
	}

	eventType := entities.WebhookEventIgnored
	switch payload.Event {
	case "payment.authorized":
		eventType = entities.WebhookEventAuthorized
	case "payment.captured", "order.paid":
		eventType = entities.WebhookEventCaptured
	case "payment.failed":
		eventType = entities.WebhookEventFailed
	}

	paymentID := payload.Payload.Payment.Entity.ID
	eventID := paymentID + "|" + payload.Event
	if paymentID == "" {
		eventID = "evt_" + uuid.NewString()
	}

	return &entities.WebhookEvent{
		Provider:          entities.ProviderRazorpay,
		EventID:           eventID,
		Type:              eventType,
		OrderID:           payload.Payload.Payment.Entity.OrderID,
		ProviderReference: paymentID,
		Verified:          true,
		RawPayload:        body,
		ReceivedAt:        time.Now().UTC(),
	}, nil
}

func (g *RazorpayGateway) doJSON(ctx context.Context, method, path string, body any) (*razorpayOrder, error) {
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
	req.SetBasicAuth(g.keyID, g.keySecret)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Printf("[payment][razorpay] request failed path=%s err=%v", path, err)
		return nil, classifyTransportError(entities.ProviderRazorpay, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(entities.ProviderRazorpay, err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("[payment][razorpay] non-success status path=%s status=%d", path, resp.StatusCode)
		return nil, classifyStatusError(entities.ProviderRazorpay, resp.StatusCode, respBody)
	}

	var order razorpayOrder
	if err := json.Unmarshal(respBody, &order); err != nil {
		return nil, fmt.Errorf("%w: decoding razorpay response: %v", entities.ErrProviderUnavailable, err)
	}
	return &order, nil
}

func mapRazorpayStatus(status string) entities.OrderStatus {
	switch status {
	case "paid":
		return entities.OrderStatusCaptured
	case "attempted":
		return entities.OrderStatusAuthorized
	default:
		return entities.OrderStatusCreated
	}
}
