package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lucassmelendez/ct-backend/internal/cache"
	"github.com/lucassmelendez/ct-backend/pkg/response"
)

// CacheHandler exposes cache introspection and manual invalidation.
type CacheHandler struct {
	manager *cache.Manager
}

func NewCacheHandler(manager *cache.Manager) *CacheHandler {
	return &CacheHandler{manager: manager}
}

// GET /api/cache/stats
func (h *CacheHandler) Stats(c *gin.Context) {
	response.Success(c, http.StatusOK, h.manager.Stats(requestContext(c)))
}

type clearCacheRequest struct {
	Pattern string `json:"pattern"`
}

// POST /api/cache/clear
func (h *CacheHandler) Clear(c *gin.Context) {
	var body clearCacheRequest
	// Body is optional; an empty or absent pattern clears everything.
	_ = c.ShouldBindJSON(&body)

	pattern := strings.TrimSpace(body.Pattern)
	if pattern == "" {
		h.manager.Clear(requestContext(c))
		response.SuccessWithMessage(c, http.StatusOK, "Cache cleared", nil)
		return
	}

	removed := h.manager.InvalidatePattern(requestContext(c), pattern)
	response.SuccessWithMessage(c, http.StatusOK, "Cache entries invalidated", gin.H{
		"pattern": pattern,
		"removed": removed,
	})
}
