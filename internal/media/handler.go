package media

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	defaultPage    = 1
	defaultPerPage = 10
)

// Handler exposes GET /media/pexels.
type Handler struct {
	client  *Client
	limiter *rate.Limiter
}

func NewHandler(client *Client, limiter *rate.Limiter) *Handler {
	return &Handler{client: client, limiter: limiter}
}

func (h *Handler) Search(c *gin.Context) {
	if !h.client.Configured() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Media integration not configured"})
		return
	}

	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
		return
	}

	page := positiveIntOr(c.Query("page"), defaultPage)
	perPage := positiveIntOr(c.Query("per_page"), defaultPerPage)

	if h.limiter != nil && !h.limiter.Allow() {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
		return
	}

	res, err := h.client.Search(c.Request.Context(), query, page, perPage)
	if err != nil {
		msg := "Media request failed"
		var ue *UpstreamError
		if errors.As(err, &ue) && ue.Message != "" {
			msg = ue.Message
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handler) Register(rg gin.IRouter) {
	rg.GET("/media/pexels", h.Search)
}

// positiveIntOr parses raw as a positive integer, falling back to def when
// the value is absent, non-numeric, or non-positive.
func positiveIntOr(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
