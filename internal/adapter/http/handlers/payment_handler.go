package handlers

import (
	"errors"
	"log"
	"net/http"

	"paycore/internal/adapter/http/dto/request"
	"paycore/internal/adapter/http/dto/response"
	"paycore/internal/domain/entities"
	"paycore/internal/usecase"
	"paycore/pkg"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles HTTP requests for the payment orchestration core.

type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// CreateOrder creates a provider order/intent for the provider in the path.
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	provider, ok := providerParam(c)
	if !ok {
		return
	}

	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[payment][handler] create invalid payload provider=%s err=%v", provider, err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	order, err := h.usecase.Initiate(c.Request.Context(), provider, entities.CreateOrderRequest{
		Amount:   req.Amount,
		Currency: req.Currency,
		Metadata: req.Metadata,
	})
	if err != nil {
		log.Printf("[payment][handler] create failed provider=%s err=%v", provider, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] create success provider=%s external_id=%s", provider, order.ExternalID)

	c.JSON(http.StatusCreated, response.FromCreatedOrder(order))
}

// CaptureOrder finalizes the order in the path (capture / settlement check).
func (h *PaymentHandler) CaptureOrder(c *gin.Context) {
	provider, ok := providerParam(c)
	if !ok {
		return
	}
	orderID := c.Param("id")

	outcome, err := h.usecase.Finalize(c.Request.Context(), provider, entities.FinalizeRequest{OrderID: orderID})
	if err != nil {
		log.Printf("[payment][handler] capture failed provider=%s order_id=%s err=%v", provider, orderID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] capture success provider=%s order_id=%s status=%s", provider, orderID, outcome.Status)

	c.JSON(http.StatusOK, response.FromOutcome(outcome))
}

// VerifyOrder finalizes via signature verification (the HMAC flow).
func (h *PaymentHandler) VerifyOrder(c *gin.Context) {
	provider, ok := providerParam(c)
	if !ok {
		return
	}
	orderID := c.Param("id")

	var req request.VerifyOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[payment][handler] verify invalid payload provider=%s order_id=%s err=%v", provider, orderID, err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	outcome, err := h.usecase.Finalize(c.Request.Context(), provider, entities.FinalizeRequest{
		OrderID:   orderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	})
	if err != nil {
		log.Printf("[payment][handler] verify failed provider=%s order_id=%s err=%v", provider, orderID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] verify success provider=%s order_id=%s status=%s", provider, orderID, outcome.Status)

	c.JSON(http.StatusOK, response.FromVerification(outcome))
}

// GetOrder returns the stored order plus the provider's current view.
func (h *PaymentHandler) GetOrder(c *gin.Context) {
	provider, ok := providerParam(c)
	if !ok {
		return
	}
	orderID := c.Param("id")

	order, details, err := h.usecase.GetOrder(c.Request.Context(), provider, orderID)
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPaymentOrder(order, details))
}

func providerParam(c *gin.Context) (entities.Provider, bool) {
	provider, ok := entities.ParseProvider(c.Param("provider"))
	if !ok {
		appErr := pkg.NewDomainErrorSimple("UNKNOWN_PROVIDER", "Unknown payment provider", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return "", false
	}
	return provider, true
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, entities.ErrInvalidAmount), errors.Is(err, entities.ErrInvalidRequest), errors.Is(err, usecase.ErrInvalidCurrency), errors.Is(err, usecase.ErrUnknownProvider):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, entities.ErrNotConfigured):
		return pkg.NewDomainErrorSimple("PROVIDER_NOT_CONFIGURED", "Payment provider not configured", http.StatusServiceUnavailable)
	case errors.Is(err, entities.ErrVerificationFailed), errors.Is(err, entities.ErrWebhookSignatureInvalid):
		return pkg.NewDomainErrorSimple("VERIFICATION_FAILED", "Signature verification failed", http.StatusBadRequest)
	case errors.Is(err, entities.ErrProviderRejected):
		return pkg.NewDomainErrorSimple("PROVIDER_REJECTED", "Payment provider rejected the request", http.StatusBadRequest)
	case errors.Is(err, entities.ErrProviderUnavailable):
		return pkg.NewDomainErrorSimple("PROVIDER_UNAVAILABLE", "Payment provider unavailable, retry later", http.StatusBadGateway)
	case errors.Is(err, entities.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Payment order not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrOrderExists), errors.Is(err, entities.ErrIdempotencyConflict):
		return pkg.NewDomainErrorSimple("ORDER_CONFLICT", "Payment order already exists", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
