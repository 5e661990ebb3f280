package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdbarber/booking-api/internal/httperr"
	"github.com/mdbarber/booking-api/internal/infra/paymentgw"
)

type PaymentHandler struct {
	provider paymentgw.Provider
}

func NewPaymentHandler(provider paymentgw.Provider) *PaymentHandler {
	return &PaymentHandler{provider: provider}
}

type CreateIntentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// CreateIntent abre el cobro con el proveedor configurado; la cita se
// crea después con el payment_ref devuelto aquí.
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	if h.provider == nil {
		httperr.BadRequest(c, "payments_disabled", "Pagos no habilitados.")
		return
	}

	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	intent, err := h.provider.CreateIntent(c.Request.Context(), req.Amount)
	if err != nil {
		httperr.Internal(c, "payment_intent_failed", "Error al iniciar el pago.")
		return
	}

	c.JSON(http.StatusCreated, intent)
}
