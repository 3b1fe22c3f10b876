package handlers

import (
	"log"
	"net/http"
	"strings"

	"paycore/internal/adapter/http/dto/response"
	"paycore/internal/domain/entities"
	"paycore/internal/usecase"

	"github.com/gin-gonic/gin"
)

// WebhookHandler receives provider-initiated callbacks. The body is read
// raw and handed to the core together with the provider's signature
// header; nothing is parsed before signature verification succeeds.

type WebhookHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewWebhookHandler(uc usecase.IPaymentUseCase) *WebhookHandler {
	return &WebhookHandler{usecase: uc}
}

func (h *WebhookHandler) Receive(c *gin.Context) {
	provider, ok := providerParam(c)
	if !ok {
		return
	}

	rawBody, err := c.GetRawData()
	if err != nil {
		log.Printf("[payment][webhook] body read failed provider=%s err=%v", provider, err)
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": "could not read body"})
		return
	}

	event, err := h.usecase.HandleWebhook(c.Request.Context(), provider, rawBody, signatureHeader(provider, c))
	if err != nil {
		log.Printf("[payment][webhook] rejected provider=%s err=%v", provider, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][webhook] acknowledged provider=%s event_id=%s type=%s", provider, event.EventID, event.Type)

	c.JSON(http.StatusOK, response.WebhookAckResponse{Received: true})
}

// signatureHeader extracts the provider's signature material. PayPal splits
// it across several transmission headers, re-joined here into one k=v list
// for the verifier.
func signatureHeader(provider entities.Provider, c *gin.Context) string {
	switch provider {
	case entities.ProviderStripe:
		return c.GetHeader("Stripe-Signature")
	case entities.ProviderRazorpay:
		return c.GetHeader("X-Razorpay-Signature")
	case entities.ProviderPayPal:
		parts := []string{
			"transmission_id=" + c.GetHeader("Paypal-Transmission-Id"),
			"transmission_time=" + c.GetHeader("Paypal-Transmission-Time"),
			"transmission_sig=" + c.GetHeader("Paypal-Transmission-Sig"),
			"cert_url=" + c.GetHeader("Paypal-Cert-Url"),
			"auth_algo=" + c.GetHeader("Paypal-Auth-Algo"),
		}
		return strings.Join(parts, ",")
	}
	return ""
}
