package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tradingvault/internal/billing"
)

type PayPalWebhookHandler struct {
	Processor *billing.PayPalProcessor
	Logger    *zap.Logger
}

func (h *PayPalWebhookHandler) Register(r *gin.Engine) {
	r.POST("/paypal-webhook", h.handle)
}

// @Summary PayPal webhook receiver
// @Tags billing
// @Accept json
// @Produce json
// @Success 200 {object} statusResponse
// @Router /paypal-webhook [post]
func (h *PayPalWebhookHandler) handle(c *gin.Context) {
	if h.Processor == nil {
		fail(c, http.StatusInternalServerError, "webhook processor unavailable")
		return
	}
	payload, err := c.GetRawData()
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("paypal webhook body read failed", zap.Error(err))
		}
		fail(c, http.StatusBadRequest, "unreadable body")
		return
	}

	status, err := h.Processor.Process(c.Request.Context(), payload)
	if err != nil {
		fail(c, http.StatusBadRequest, "malformed event")
		return
	}
	webhookStatus(c, status)
}
