package handlers

import (
	"net/http"

	"paycore/internal/adapter/http/dto/response"
	"paycore/internal/usecase"

	"github.com/gin-gonic/gin"
)

type GatewayHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewGatewayHandler(uc usecase.IPaymentUseCase) *GatewayHandler {
	return &GatewayHandler{usecase: uc}
}

// ListGateways reports which providers are configured. Secrets never
// leave the process; only availability and the public identifier.
func (h *GatewayHandler) ListGateways(c *gin.Context) {
	statuses := h.usecase.GatewayStatus()
	c.JSON(http.StatusOK, response.FromGatewayStatuses(statuses))
}
