package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lucassmelendez/ct-backend/internal/cache"
)

// Suggested TTLs per resource family. Herd data changes often, catalogue
// data almost never.
const (
	CattleCacheTTL      = 10 * time.Minute
	FarmCacheTTL        = 15 * time.Minute
	UserCacheTTL        = 30 * time.Minute
	PremiumTypeCacheTTL = time.Hour
)

// cacheWriter buffers the response body so a successful reply can be stored
// after the handler runs.
type cacheWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *cacheWriter) Write(p []byte) (int, error) {
	w.body.Write(p)
	return w.ResponseWriter.Write(p)
}

func (w *cacheWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// CacheKey builds the cache identity for a request: resource name, the full
// request URI (path plus query) and the authenticated user (or "anonymous").
// Keeping the user in the key prevents one user's response leaking to another.
func CacheKey(c *gin.Context, resource string) string {
	identity := "anonymous"
	if userID, ok := c.Get(CtxUserIDKey); ok {
		identity = fmt.Sprintf("%v", userID)
	}
	return fmt.Sprintf("%s_%s_%s", resource, c.Request.URL.RequestURI(), identity)
}

// CachePage serves GET responses from the cache manager and stores fresh
// responses on the way out. Only 2xx replies are cached; errors always pass
// through to the client uncached.
func CachePage(manager *cache.Manager, resource string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if manager == nil || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := CacheKey(c, resource)
		if body, ok := manager.Get(c.Request.Context(), key); ok {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", body)
			c.Abort()
			return
		}

		c.Header("X-Cache", "MISS")
		writer := &cacheWriter{ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		status := c.Writer.Status()
		if status >= 200 && status < 300 && writer.body.Len() > 0 {
			manager.Set(c.Request.Context(), key, writer.body.Bytes(), ttl)
		}
	}
}

// InvalidateCache drops cached entries whose keys contain any of the given
// substrings after a successful mutation. Failed mutations leave the cache
// untouched.
func InvalidateCache(manager *cache.Manager, patterns ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if manager == nil {
			return
		}
		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}
		for _, pattern := range patterns {
			manager.InvalidatePattern(c.Request.Context(), pattern)
		}
	}
}
