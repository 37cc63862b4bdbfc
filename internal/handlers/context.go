package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/lucassmelendez/ct-backend/internal/middleware"
)

// requestContext safely returns the request context with a background fallback for tests.
func requestContext(c *gin.Context) context.Context {
	if c == nil {
		return context.Background()
	}
	if req := c.Request; req != nil {
		return req.Context()
	}
	return context.Background()
}

// currentUserID returns the authenticated user id, or 0 when the request is
// anonymous.
func currentUserID(c *gin.Context) uint {
	value, ok := c.Get(middleware.CtxUserIDKey)
	if !ok {
		return 0
	}
	id, _ := value.(uint)
	return id
}
