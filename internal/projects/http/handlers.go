package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/studiokit/projects-backend/internal/projects"
	"github.com/studiokit/projects-backend/internal/projects/domain"
)

func (h *Handler) list(c *gin.Context) {
	items, err := h.store.List(c.Request.Context())
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	p, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type createReq struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	desc := req.Description
	if desc != nil {
		trimmed := strings.TrimSpace(*desc)
		desc = &trimmed
	}

	p, err := h.store.Create(c.Request.Context(), name, desc)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

type updateReq struct {
	Name        *string         `json:"name"`
	Description json.RawMessage `json:"description"`
}

func (h *Handler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	if req.Name == nil && req.Description == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields provided to update"})
		return
	}

	var patch projects.UpdateParams
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name cannot be empty"})
			return
		}
		patch.Name = &name
	}
	if req.Description != nil {
		patch.DescriptionSet = true
		// "description": null clears the field; otherwise it must be a string.
		if string(req.Description) != "null" {
			var desc string
			if err := json.Unmarshal(req.Description, &desc); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
				return
			}
			desc = strings.TrimSpace(desc)
			patch.Description = &desc
		}
	}

	p, err := h.store.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.store.Delete(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project id"})
		return 0, false
	}
	return id, true
}

// storeError maps store failures onto the JSON error envelope.
func (h *Handler) storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
	case errors.Is(err, projects.ErrUpstream):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Project storage unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Storage operation failed"})
	}
}
