package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradingvault/internal/billing"
)

// Response bodies follow the storefront contract: checkout answers
// {url}/{error}, webhooks answer {status}.

type urlResponse struct {
	URL string `json:"url"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func okURL(c *gin.Context, url string) {
	c.JSON(http.StatusOK, urlResponse{URL: url})
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, errorResponse{Error: message})
}

func webhookStatus(c *gin.Context, status billing.Status) {
	c.JSON(http.StatusOK, statusResponse{Status: string(status)})
}
