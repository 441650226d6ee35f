package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func RegisterDocs(r *gin.Engine) {
	r.GET("/docs", func(c *gin.Context) {
		c.Header("Content-Type", "text/markdown; charset=utf-8")
		c.String(http.StatusOK, `# TradingVault Service

Signal relay and billing glue for the TradingVault channel.

## Routes

- GET  /healthz
- GET  /readyz
- GET  /swagger/index.html
- POST /create-checkout-session   {plan, email, tg_username} -> {url} | {error}
- POST /stripe-webhook            raw body + Stripe-Signature -> {status}
- POST /paypal-webhook            {event_type, resource} -> {status}

## Background

A relay loop polls the signal store every 60s and posts newly created
signals to the Telegram channel. Restarting the service re-sends the
newest signal once.
`)
	})
}
