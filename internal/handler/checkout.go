package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tradingvault/internal/billing"
)

type CheckoutHandler struct {
	Checkout *billing.CheckoutService
	Logger   *zap.Logger
}

func (h *CheckoutHandler) Register(r *gin.Engine) {
	r.POST("/create-checkout-session", h.createSession)
}

type createSessionRequest struct {
	Plan       string `json:"plan" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	TGUsername string `json:"tg_username" binding:"required"`
}

// @Summary Create a checkout session
// @Tags billing
// @Accept json
// @Produce json
// @Param request body createSessionRequest true "plan selector and customer identity"
// @Success 200 {object} urlResponse
// @Router /create-checkout-session [post]
func (h *CheckoutHandler) createSession(c *gin.Context) {
	if h.Checkout == nil {
		fail(c, http.StatusInternalServerError, "checkout unavailable")
		return
	}
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	url, err := h.Checkout.CreateSession(c.Request.Context(), req.Plan, req.Email, req.TGUsername)
	if err != nil {
		// Provider failures and invalid plans both surface as a structured
		// error body, matching the storefront contract.
		c.JSON(http.StatusOK, errorResponse{Error: err.Error()})
		return
	}
	okURL(c, url)
}
