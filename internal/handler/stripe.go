package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tradingvault/internal/billing"
)

type StripeWebhookHandler struct {
	Processor *billing.StripeProcessor
	Logger    *zap.Logger
}

func (h *StripeWebhookHandler) Register(r *gin.Engine) {
	r.POST("/stripe-webhook", h.handle)
}

// @Summary Stripe webhook receiver
// @Tags billing
// @Accept json
// @Produce json
// @Success 200 {object} statusResponse
// @Router /stripe-webhook [post]
func (h *StripeWebhookHandler) handle(c *gin.Context) {
	if h.Processor == nil {
		fail(c, http.StatusInternalServerError, "webhook processor unavailable")
		return
	}
	payload, err := c.GetRawData()
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("stripe webhook body read failed", zap.Error(err))
		}
		fail(c, http.StatusBadRequest, "unreadable body")
		return
	}

	status := h.Processor.Process(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
	webhookStatus(c, status)
}
