package gateways

import (
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
	"strconv"
	"strings"
	"time"

	"paycore/internal/domain/entities"
)

const (
	stripeBaseURL            = "https://api.stripe.com"
	stripeSignatureTolerance = 5 * time.Minute
)

var ErrMissingStripeSecretKey = errors.New("missing STRIPE_SECRET_KEY")

// StripeGateway is the intent/capture adapter. CreateOrder opens a payment
// intent and hands the client_secret back as the client artifact; the
// client SDK drives confirmation and the outcome is reconciled via webhook
// or an explicit Finalize lookup.

type StripeGateway struct {
	secretKey     string
	publicKey     string
	webhookSecret string
	baseURL       string
	httpClient    *http.Client

	// test hook for webhook timestamp tolerance checks
	now func() time.Time
}

func NewStripeGateway(secretKey, publicKey, webhookSecret string) (*StripeGateway, error) {
	if secretKey == "" {
		log.Printf("[payment][stripe] missing STRIPE_SECRET_KEY")
		return nil, ErrMissingStripeSecretKey
	}
	log.Printf("[payment][stripe] client initialized")
	return &StripeGateway{
		secretKey:     secretKey,
		publicKey:     publicKey,
		webhookSecret: webhookSecret,
		baseURL:       stripeBaseURL,
		httpClient:    &http.Client{Timeout: ProviderTimeout()},
		now:           time.Now,
	}, nil
}

func (g *StripeGateway) Status() entities.GatewayStatus {
	return entities.GatewayStatus{
		Provider:         entities.ProviderStripe,
		Available:        g != nil && g.secretKey != "",
		PublicIdentifier: g.publicKey,
	}
}

type stripeIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

func (g *StripeGateway) CreateOrder(ctx context.Context, req entities.CreateOrderRequest) (*entities.CreateOrderResult, error) {
	if g == nil || g.secretKey == "" {
		return nil, entities.ErrNotConfigured
	}
	minor, err := entities.ToMinorUnits(req.Amount)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(minor, 10))
	form.Set("currency", strings.ToLower(req.Currency))
	form.Set("automatic_payment_methods[enabled]", "true")
	for k, v := range req.Metadata {
		form.Set("metadata["+k+"]", v)
	}

	started := time.Now()
	intent, err := g.doForm(ctx, http.MethodPost, "/v1/payment_intents", form)
	if err != nil {
		return nil, err
	}
	log.Printf("[payment][stripe] intent created intent_id=%s status=%s latency_ms=%d", intent.ID, intent.Status, time.Since(started).Milliseconds())

	return &entities.CreateOrderResult{
		ExternalID:     intent.ID,
		ClientArtifact: intent.ClientSecret,
	}, nil
}

func (g *StripeGateway) Finalize(ctx context.Context, req entities.FinalizeRequest) (*entities.Outcome, error) {
	if g == nil || g.secretKey == "" {
		return nil, entities.ErrNotConfigured
	}
	if strings.TrimSpace(req.OrderID) == "" {
		return nil, fmt.Errorf("%w: order id is required", entities.ErrInvalidRequest)
	}

	started := time.Now()
	intent, err := g.doForm(ctx, http.MethodGet, "/v1/payment_intents/"+url.PathEscape(req.OrderID), nil)
	if err != nil {
		return nil, err
	}
	status := mapStripeStatus(intent.Status)
	log.Printf("[payment][stripe] finalize intent_id=%s provider_status=%s status=%s latency_ms=%d", intent.ID, intent.Status, status, time.Since(started).Milliseconds())

	if !status.IsTerminal() {
		return nil, fmt.Errorf("%w: intent %s still %s", entities.ErrProviderRejected, intent.ID, intent.Status)
	}
	return &entities.Outcome{Status: status, ProviderReference: intent.ID}, nil
}

func (g *StripeGateway) GetDetails(ctx context.Context, externalID string) (*entities.OrderDetails, error) {
	if g == nil || g.secretKey == "" {
		return nil, entities.ErrNotConfigured
	}
	intent, err := g.doForm(ctx, http.MethodGet, "/v1/payment_intents/"+url.PathEscape(externalID), nil)
	if err != nil {
		return nil, err
	}
	return &entities.OrderDetails{
		ID:       intent.ID,
		Status:   mapStripeStatus(intent.Status),
		Amount:   entities.FromMinorUnits(intent.Amount).String(),
		Currency: strings.ToUpper(intent.Currency),
	}, nil
}

// VerifyWebhook checks the Stripe-Signature header (t=<ts>,v1=<hex>) by
// recomputing HMAC-SHA256(webhook_secret, ts + "." + body) before the
// payload is parsed or trusted.
func (g *StripeGateway) VerifyWebhook(body []byte, signatureHeader string) error {
	if g == nil || g.webhookSecret == "" {
		return entities.ErrNotConfigured
	}
	var ts string
	var candidates []string
	for _, part := range strings.Split(signatureHeader, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			ts = v
		case "v1":
			candidates = append(candidates, v)
		}
	}
	if ts == "" || len(candidates) == 0 {
		return fmt.Errorf("%w: malformed signature header", entities.ErrWebhookSignatureInvalid)
	}

	epoch, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: malformed timestamp", entities.ErrWebhookSignatureInvalid)
	}
	if delta := g.now().Sub(time.Unix(epoch, 0)); delta > stripeSignatureTolerance || delta < -stripeSignatureTolerance {
		return fmt.Errorf("%w: timestamp outside tolerance", entities.ErrWebhookSignatureInvalid)
	}

	mac := hmac.New(sha256.New, []byte(g.webhookSecret))
	mac.Write([]byte(ts))
	mac.Write([]byte("."))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	for _, candidate := range candidates {
		if hmac.Equal([]byte(expected), []byte(candidate)) {
			return nil
		}
	}
	return entities.ErrWebhookSignatureInvalid
}

func (g *StripeGateway) ParseWebhook(body []byte) (*entities.WebhookEvent, error) {
	var payload struct {
		ID   string `json:"id"`
		Type string `json:"type"`
		Data struct {
			Object struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"object"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrInvalidRequest, err)
	}

	eventType := entities.WebhookEventIgnored
	switch payload.Type {
	case "payment_intent.succeeded":
		eventType = entities.WebhookEventCaptured
	case "payment_intent.amount_capturable_updated":
		eventType = entities.WebhookEventAuthorized
	case "payment_intent.payment_failed", "payment_intent.canceled":
		eventType = entities.WebhookEventFailed
	}

	return &entities.WebhookEvent{
		Provider:          entities.ProviderStripe,
		EventID:           payload.ID,
		Type:              eventType,
		OrderID:           payload.Data.Object.ID,
		ProviderReference: payload.Data.Object.ID,
		Verified:          true,
		RawPayload:        body,
		ReceivedAt:        g.now(),
	}, nil
}

func (g *StripeGateway) doForm(ctx context.Context, method, path string, form url.Values) (*stripeIntent, error) {
	var reqBody io.Reader
	if form != nil {
		reqBody = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrProviderUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Printf("[payment][stripe] request failed path=%s err=%v", path, err)
		return nil, classifyTransportError(entities.ProviderStripe, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(entities.ProviderStripe, err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("[payment][stripe] non-success status path=%s status=%d", path, resp.StatusCode)
		return nil, classifyStatusError(entities.ProviderStripe, resp.StatusCode, body)
	}

	var intent stripeIntent
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, fmt.Errorf("%w: decoding stripe response: %v", entities.ErrProviderUnavailable, err)
	}
	return &intent, nil
}

func mapStripeStatus(status string) entities.OrderStatus {
	switch status {
	case "succeeded":
		return entities.OrderStatusCaptured
	case "requires_capture":
		return entities.OrderStatusAuthorized
	case "canceled":
		return entities.OrderStatusFailed
	default:
		return entities.OrderStatusCreated
	}
}
