package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"paycore/internal/adapter/http/handlers/mocks"
	"paycore/internal/domain/entities"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newWebhookRouter(t *testing.T) (*gin.Engine, *mocks.MockIPaymentUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIPaymentUseCase(ctrl)
	h := NewWebhookHandler(uc)

	r := gin.New()
	r.POST("/v1/payments/:provider/webhook", h.Receive)
	return r, uc
}

func TestWebhookHandler_Receive(t *testing.T) {
	body := `{"id":"evt_1","type":"payment_intent.succeeded"}`

	t.Run("stripe signature header passes through raw", func(t *testing.T) {
		r, uc := newWebhookRouter(t)
		uc.EXPECT().HandleWebhook(gomock.Any(), entities.ProviderStripe, []byte(body), "t=1,v1=abc").Return(entities.WebhookEvent{
			Provider: entities.ProviderStripe,
			EventID:  "evt_1",
			Type:     entities.WebhookEventCaptured,
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/stripe/webhook", bytes.NewBufferString(body))
		req.Header.Set("Stripe-Signature", "t=1,v1=abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp struct {
			Received bool `json:"received"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !resp.Received {
			t.Fatalf("expected received ack")
		}
	})

	t.Run("razorpay signature header", func(t *testing.T) {
		r, uc := newWebhookRouter(t)
		uc.EXPECT().HandleWebhook(gomock.Any(), entities.ProviderRazorpay, []byte(body), "deadbeef").Return(entities.WebhookEvent{
			Provider: entities.ProviderRazorpay,
			EventID:  "pay_123|payment.captured",
			Type:     entities.WebhookEventCaptured,
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/razorpay/webhook", bytes.NewBufferString(body))
		req.Header.Set("X-Razorpay-Signature", "deadbeef")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("paypal transmission headers are combined", func(t *testing.T) {
		r, uc := newWebhookRouter(t)

		var gotHeader string
		uc.EXPECT().HandleWebhook(gomock.Any(), entities.ProviderPayPal, []byte(body), gomock.Any()).DoAndReturn(
			func(_ any, _ entities.Provider, _ []byte, signatureHeader string) (entities.WebhookEvent, error) {
				gotHeader = signatureHeader
				return entities.WebhookEvent{Provider: entities.ProviderPayPal, EventID: "WH-1"}, nil
			})

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/paypal/webhook", bytes.NewBufferString(body))
		req.Header.Set("Paypal-Transmission-Id", "tx-1")
		req.Header.Set("Paypal-Transmission-Time", "2026-03-01T12:00:00Z")
		req.Header.Set("Paypal-Transmission-Sig", "sig")
		req.Header.Set("Paypal-Cert-Url", "https://api.paypal.com/cert")
		req.Header.Set("Paypal-Auth-Algo", "SHA256withRSA")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		for _, want := range []string{"transmission_id=tx-1", "transmission_sig=sig", "auth_algo=SHA256withRSA"} {
			if !strings.Contains(gotHeader, want) {
				t.Fatalf("expected header to contain %q, got %q", want, gotHeader)
			}
		}
	})

	t.Run("invalid signature maps to 400", func(t *testing.T) {
		r, uc := newWebhookRouter(t)
		uc.EXPECT().HandleWebhook(gomock.Any(), entities.ProviderStripe, gomock.Any(), gomock.Any()).Return(entities.WebhookEvent{}, entities.ErrWebhookSignatureInvalid)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/stripe/webhook", bytes.NewBufferString(body))
		req.Header.Set("Stripe-Signature", "t=1,v1=bad")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		r, _ := newWebhookRouter(t)
		req := httptest.NewRequest(http.MethodPost, "/v1/payments/adyen/webhook", bytes.NewBufferString(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestGatewayHandler_ListGateways(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIPaymentUseCase(ctrl)
	h := NewGatewayHandler(uc)

	r := gin.New()
	r.GET("/v1/gateways", h.ListGateways)

	uc.EXPECT().GatewayStatus().Return([]entities.GatewayStatus{
		{Provider: entities.ProviderStripe, Available: true, PublicIdentifier: "pk_test_123"},
		{Provider: entities.ProviderPayPal, Available: false},
		{Provider: entities.ProviderRazorpay, Available: false},
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/gateways", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp []struct {
		Provider         string `json:"provider"`
		Available        bool   `json:"available"`
		PublicIdentifier string `json:"public_identifier"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp) != 3 {
		t.Fatalf("expected 3 providers, got %d", len(resp))
	}
	if resp[0].Provider != "stripe" || !resp[0].Available || resp[0].PublicIdentifier != "pk_test_123" {
		t.Fatalf("unexpected response: %+v", resp[0])
	}

	// secret material must never appear
	if strings.Contains(w.Body.String(), "sk_") {
		t.Fatalf("response leaked secret material: %s", w.Body.String())
	}
}
