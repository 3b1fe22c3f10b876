package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"paycore/internal/adapter/http/handlers/mocks"
	"paycore/internal/domain/entities"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newPaymentRouter(t *testing.T) (*gin.Engine, *mocks.MockIPaymentUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIPaymentUseCase(ctrl)
	h := NewPaymentHandler(uc)

	r := gin.New()
	r.POST("/v1/payments/:provider/orders", h.CreateOrder)
	r.GET("/v1/payments/:provider/orders/:id", h.GetOrder)
	r.POST("/v1/payments/:provider/orders/:id/capture", h.CaptureOrder)
	r.POST("/v1/payments/:provider/orders/:id/verify", h.VerifyOrder)
	return r, uc
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPaymentHandler_CreateOrder(t *testing.T) {
	t.Run("unknown provider", func(t *testing.T) {
		r, _ := newPaymentRouter(t)
		w := doJSON(r, http.MethodPost, "/v1/payments/adyen/orders", `{"amount":"10.00","currency":"USD"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("invalid payload", func(t *testing.T) {
		r, _ := newPaymentRouter(t)
		w := doJSON(r, http.MethodPost, "/v1/payments/stripe/orders", "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing currency", func(t *testing.T) {
		r, _ := newPaymentRouter(t)
		w := doJSON(r, http.MethodPost, "/v1/payments/stripe/orders", `{"amount":"10.00"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("provider not configured maps to 503", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().Initiate(gomock.Any(), entities.ProviderPayPal, gomock.Any()).Return(entities.PaymentOrder{}, entities.ErrNotConfigured)

		w := doJSON(r, http.MethodPost, "/v1/payments/paypal/orders", `{"amount":"10.00","currency":"EUR"}`)
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}
	})

	t.Run("provider unavailable maps to 502", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().Initiate(gomock.Any(), entities.ProviderStripe, gomock.Any()).Return(entities.PaymentOrder{}, entities.ErrProviderUnavailable)

		w := doJSON(r, http.MethodPost, "/v1/payments/stripe/orders", `{"amount":"10.00","currency":"USD"}`)
		if w.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", w.Code)
		}
	})

	t.Run("success returns 201 with client artifact", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().Initiate(gomock.Any(), entities.ProviderStripe, gomock.Any()).Return(entities.PaymentOrder{
			Provider:       entities.ProviderStripe,
			ExternalID:     "pi_123",
			Status:         entities.OrderStatusCreated,
			Amount:         "499.99",
			Currency:       "USD",
			ClientArtifact: "pi_123_secret_xyz",
		}, nil)

		w := doJSON(r, http.MethodPost, "/v1/payments/stripe/orders", `{"amount":"499.99","currency":"USD"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}

		var resp struct {
			ExternalID     string `json:"external_id"`
			ClientArtifact string `json:"client_artifact"`
			Status         string `json:"status"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.ExternalID != "pi_123" || resp.ClientArtifact != "pi_123_secret_xyz" || resp.Status != "created" {
			t.Fatalf("unexpected response: %+v", resp)
		}
	})
}

func TestPaymentHandler_CaptureOrder(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().Finalize(gomock.Any(), entities.ProviderPayPal, entities.FinalizeRequest{OrderID: "5O190127TN364715T"}).Return(entities.Outcome{
			Status:            entities.OrderStatusCaptured,
			ProviderReference: "3C679366HH908993F",
		}, nil)

		w := doJSON(r, http.MethodPost, "/v1/payments/paypal/orders/5O190127TN364715T/capture", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		var resp struct {
			Status            string `json:"status"`
			ProviderReference string `json:"provider_reference"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Status != "captured" || resp.ProviderReference != "3C679366HH908993F" {
			t.Fatalf("unexpected response: %+v", resp)
		}
	})

	t.Run("order not found maps to 404", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().Finalize(gomock.Any(), entities.ProviderPayPal, gomock.Any()).Return(entities.Outcome{}, entities.ErrOrderNotFound)

		w := doJSON(r, http.MethodPost, "/v1/payments/paypal/orders/missing/capture", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("provider rejection maps to 400", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().Finalize(gomock.Any(), entities.ProviderPayPal, gomock.Any()).Return(entities.Outcome{}, entities.ErrProviderRejected)

		w := doJSON(r, http.MethodPost, "/v1/payments/paypal/orders/5O190127TN364715T/capture", "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestPaymentHandler_VerifyOrder(t *testing.T) {
	t.Run("verified", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().Finalize(gomock.Any(), entities.ProviderRazorpay, entities.FinalizeRequest{
			OrderID:   "order_abc",
			PaymentID: "pay_123",
			Signature: "sig",
		}).Return(entities.Outcome{Status: entities.OrderStatusVerified, ProviderReference: "pay_123"}, nil)

		w := doJSON(r, http.MethodPost, "/v1/payments/razorpay/orders/order_abc/verify", `{"payment_id":"pay_123","signature":"sig"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		var resp struct {
			Verified bool   `json:"verified"`
			Status   string `json:"status"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !resp.Verified || resp.Status != "verified" {
			t.Fatalf("unexpected response: %+v", resp)
		}
	})

	t.Run("missing signature fields", func(t *testing.T) {
		r, _ := newPaymentRouter(t)
		w := doJSON(r, http.MethodPost, "/v1/payments/razorpay/orders/order_abc/verify", `{"payment_id":"pay_123"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("verification failure maps to 400", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().Finalize(gomock.Any(), entities.ProviderRazorpay, gomock.Any()).Return(entities.Outcome{}, entities.ErrVerificationFailed)

		w := doJSON(r, http.MethodPost, "/v1/payments/razorpay/orders/order_abc/verify", `{"payment_id":"pay_123","signature":"bad"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestPaymentHandler_GetOrder(t *testing.T) {
	t.Run("success includes provider details", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().GetOrder(gomock.Any(), entities.ProviderStripe, "pi_123").Return(entities.PaymentOrder{
			Provider:   entities.ProviderStripe,
			ExternalID: "pi_123",
			Status:     entities.OrderStatusCaptured,
			Amount:     "499.99",
			Currency:   "USD",
		}, &entities.OrderDetails{ID: "pi_123", Status: entities.OrderStatusCaptured, Amount: "499.99", Currency: "USD"}, nil)

		w := doJSON(r, http.MethodGet, "/v1/payments/stripe/orders/pi_123", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		var resp struct {
			Status          string `json:"status"`
			ProviderDetails *struct {
				ID string `json:"id"`
			} `json:"provider_details"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Status != "captured" || resp.ProviderDetails == nil || resp.ProviderDetails.ID != "pi_123" {
			t.Fatalf("unexpected response: %+v", resp)
		}
	})

	t.Run("not found", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().GetOrder(gomock.Any(), entities.ProviderStripe, "pi_zzz").Return(entities.PaymentOrder{}, nil, entities.ErrOrderNotFound)

		w := doJSON(r, http.MethodGet, "/v1/payments/stripe/orders/pi_zzz", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}
