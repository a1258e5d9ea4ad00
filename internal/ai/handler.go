package ai

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Handler exposes POST /ai/complete.
type Handler struct {
	client       *Client
	defaultModel string
	limiter      *rate.Limiter
}

func NewHandler(client *Client, defaultModel string, limiter *rate.Limiter) *Handler {
	return &Handler{client: client, defaultModel: defaultModel, limiter: limiter}
}

type completeReq struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model"`
}

func (h *Handler) Complete(c *gin.Context) {
	if !h.client.Configured() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AI integration not configured"})
		return
	}

	var req completeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt is required"})
		return
	}

	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = h.defaultModel
	}

	if h.limiter != nil && !h.limiter.Allow() {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
		return
	}

	text, err := h.client.Complete(c.Request.Context(), model, prompt)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI request failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": text})
}

func (h *Handler) Register(rg gin.IRouter) {
	rg.POST("/ai/complete", h.Complete)
}
