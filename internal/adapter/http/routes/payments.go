package routes

import (
	"paycore/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPayments = "/payments"
	PathGateways = "/gateways"
)

func addPaymentRoutes(rg *gin.RouterGroup, paymentHandler *handlers.PaymentHandler, webhookHandler *handlers.WebhookHandler, gatewayHandler *handlers.GatewayHandler) {
	payments := rg.Group(PathPayments)
	{
		payments.POST("/:provider/orders", paymentHandler.CreateOrder)
		payments.GET("/:provider/orders/:id", paymentHandler.GetOrder)
		payments.POST("/:provider/orders/:id/capture", paymentHandler.CaptureOrder)
		payments.POST("/:provider/orders/:id/verify", paymentHandler.VerifyOrder)
		payments.POST("/:provider/webhook", webhookHandler.Receive)
	}

	rg.GET(PathGateways, gatewayHandler.ListGateways)
}
