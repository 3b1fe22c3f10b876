package gateways

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"paycore/internal/domain/entities"
)

func razorpaySignature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestNewRazorpayGateway_MissingKeys(t *testing.T) {
	if _, err := NewRazorpayGateway("", "secret", "whsec"); !errors.Is(err, ErrMissingRazorpayKeys) {
		t.Fatalf("expected ErrMissingRazorpayKeys, got %v", err)
	}
	if _, err := NewRazorpayGateway("key", "", "whsec"); !errors.Is(err, ErrMissingRazorpayKeys) {
		t.Fatalf("expected ErrMissingRazorpayKeys, got %v", err)
	}
}

func TestRazorpayGateway_Finalize(t *testing.T) {
	gw, err := NewRazorpayGateway("rzp_test_key", "my_key_secret", "whsec")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("valid signature verifies", func(t *testing.T) {
		outcome, err := gw.Finalize(context.Background(), entities.FinalizeRequest{
			OrderID:   "order_abc",
			PaymentID: "pay_123",
			Signature: razorpaySignature("my_key_secret", "order_abc", "pay_123"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if outcome.Status != entities.OrderStatusVerified {
			t.Fatalf("expected verified, got %s", outcome.Status)
		}
		if outcome.ProviderReference != "pay_123" {
			t.Fatalf("expected pay_123, got %s", outcome.ProviderReference)
		}
	})

	t.Run("tampered signature rejected", func(t *testing.T) {
		sig := razorpaySignature("my_key_secret", "order_abc", "pay_123")
		_, err := gw.Finalize(context.Background(), entities.FinalizeRequest{
			OrderID:   "order_abc",
			PaymentID: "pay_999",
			Signature: sig,
		})
		if !errors.Is(err, entities.ErrVerificationFailed) {
			t.Fatalf("expected ErrVerificationFailed, got %v", err)
		}
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		_, err := gw.Finalize(context.Background(), entities.FinalizeRequest{
			OrderID:   "order_abc",
			PaymentID: "pay_123",
			Signature: razorpaySignature("other_secret", "order_abc", "pay_123"),
		})
		if !errors.Is(err, entities.ErrVerificationFailed) {
			t.Fatalf("expected ErrVerificationFailed, got %v", err)
		}
	})

	t.Run("missing identifiers rejected before any work", func(t *testing.T) {
		_, err := gw.Finalize(context.Background(), entities.FinalizeRequest{OrderID: "order_abc"})
		if !errors.Is(err, entities.ErrInvalidRequest) {
			t.Fatalf("expected ErrInvalidRequest, got %v", err)
		}
	})
}

func TestRazorpayGateway_CreateOrder(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotPath, gotUser string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotUser, _, _ = r.BasicAuth()
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"order_abc","status":"created","amount":49999,"currency":"INR"}`))
		}))
		defer srv.Close()

		gw, err := NewRazorpayGateway("rzp_test_key", "my_key_secret", "whsec")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		gw.baseURL = srv.URL

		result, err := gw.CreateOrder(context.Background(), entities.CreateOrderRequest{
			Amount:   decimal.RequireFromString("499.99"),
			Currency: "INR",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.ExternalID != "order_abc" || result.ClientArtifact != "order_abc" {
			t.Fatalf("unexpected result: %+v", result)
		}
		if gotPath != "/v1/orders" {
			t.Fatalf("expected /v1/orders, got %s", gotPath)
		}
		if gotUser != "rzp_test_key" {
			t.Fatalf("expected basic auth user rzp_test_key, got %s", gotUser)
		}
	})

	t.Run("invalid amount rejected before any network call", func(t *testing.T) {
		var hits int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
		}))
		defer srv.Close()

		gw, _ := NewRazorpayGateway("rzp_test_key", "my_key_secret", "whsec")
		gw.baseURL = srv.URL

		_, err := gw.CreateOrder(context.Background(), entities.CreateOrderRequest{
			Amount:   decimal.RequireFromString("0.005"),
			Currency: "INR",
		})
		if !errors.Is(err, entities.ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
		if hits != 0 {
			t.Fatalf("expected no provider call, got %d", hits)
		}
	})

	t.Run("4xx maps to rejected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"description":"amount too small"}}`))
		}))
		defer srv.Close()

		gw, _ := NewRazorpayGateway("rzp_test_key", "my_key_secret", "whsec")
		gw.baseURL = srv.URL

		_, err := gw.CreateOrder(context.Background(), entities.CreateOrderRequest{
			Amount:   decimal.RequireFromString("1.00"),
			Currency: "INR",
		})
		if !errors.Is(err, entities.ErrProviderRejected) {
			t.Fatalf("expected ErrProviderRejected, got %v", err)
		}
	})

	t.Run("5xx maps to unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		gw, _ := NewRazorpayGateway("rzp_test_key", "my_key_secret", "whsec")
		gw.baseURL = srv.URL

		_, err := gw.CreateOrder(context.Background(), entities.CreateOrderRequest{
			Amount:   decimal.RequireFromString("1.00"),
			Currency: "INR",
		})
		if !errors.Is(err, entities.ErrProviderUnavailable) {
			t.Fatalf("expected ErrProviderUnavailable, got %v", err)
		}
	})
}

func TestRazorpayGateway_VerifyWebhook(t *testing.T) {
	gw, _ := NewRazorpayGateway("rzp_test_key", "my_key_secret", "my_webhook_secret")
	body := []byte(`{"event":"payment.captured"}`)

	mac := hmac.New(sha256.New, []byte("my_webhook_secret"))
	mac.Write(body)
	good := hex.EncodeToString(mac.Sum(nil))

	if err := gw.VerifyWebhook(body, good); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := gw.VerifyWebhook(body, "deadbeef"); !errors.Is(err, entities.ErrWebhookSignatureInvalid) {
		t.Fatalf("expected ErrWebhookSignatureInvalid, got %v", err)
	}
	if err := gw.VerifyWebhook([]byte(`{"event":"tampered"}`), good); !errors.Is(err, entities.ErrWebhookSignatureInvalid) {
		t.Fatalf("expected ErrWebhookSignatureInvalid, got %v", err)
	}

	t.Run("no webhook secret configured", func(t *testing.T) {
		bare, _ := NewRazorpayGateway("rzp_test_key", "my_key_secret", "")
		if err := bare.VerifyWebhook(body, good); !errors.Is(err, entities.ErrNotConfigured) {
			t.Fatalf("expected ErrNotConfigured, got %v", err)
		}
	})
}

func TestRazorpayGateway_ParseWebhook(t *testing.T) {
	gw, _ := NewRazorpayGateway("rzp_test_key", "my_key_secret", "whsec")

	t.Run("payment captured", func(t *testing.T) {
		event, err := gw.ParseWebhook([]byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_123","order_id":"order_abc"}}}}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if event.Type != entities.WebhookEventCaptured {
			t.Fatalf("expected captured, got %s", event.Type)
		}
		if event.OrderID != "order_abc" || event.ProviderReference != "pay_123" {
			t.Fatalf("unexpected event: %+v", event)
		}
		if event.EventID != "pay_123|payment.captured" {
			t.Fatalf("unexpected event id: %s", event.EventID)
		}
	})

	t.Run("unhandled event ignored", func(t *testing.T) {
		event, err := gw.ParseWebhook([]byte(`{"event":"refund.created","payload":{"payment":{"entity":{"id":"pay_123","order_id":"order_abc"}}}}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if event.Type != entities.WebhookEventIgnored {
			t.Fatalf("expected ignored, got %s", event.Type)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		if _, err := gw.ParseWebhook([]byte(`{`)); !errors.Is(err, entities.ErrInvalidRequest) {
			t.Fatalf("expected ErrInvalidRequest, got %v", err)
		}
	})
}
