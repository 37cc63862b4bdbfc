package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/lucassmelendez/ct-backend/internal/cache"
)

func newCacheTestRouter(manager *cache.Manager, userID uint) (*gin.Engine, *int) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	if userID != 0 {
		r.Use(func(c *gin.Context) {
			c.Set(CtxUserIDKey, userID)
			c.Next()
		})
	}

	calls := 0
	r.GET("/api/fincas", CachePage(manager, "finca", time.Minute), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"calls": calls})
	})
	r.GET("/api/fallo", CachePage(manager, "fallo", time.Minute), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
	})
	r.POST("/api/fincas", InvalidateCache(manager, "finca"), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})
	r.POST("/api/fincas/rechazo", InvalidateCache(manager, "finca"), func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false})
	})

	return r, &calls
}

func TestCachePageServesSecondRequestFromCache(t *testing.T) {
	manager := cache.NewManager(cache.NewMemoryTier(), nil)
	r, calls := newCacheTestRouter(manager, 7)

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/fincas", nil))
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/fincas", nil))
	require.Equal(t, http.StatusOK, second.Code)
	require.Equal(t, "HIT", second.Header().Get("X-Cache"))
	require.Equal(t, first.Body.String(), second.Body.String())
	require.Equal(t, 1, *calls)
}

func TestCachePageSkipsErrorResponses(t *testing.T) {
	manager := cache.NewManager(cache.NewMemoryTier(), nil)
	r, calls := newCacheTestRouter(manager, 7)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/fallo", nil))
		require.Equal(t, http.StatusInternalServerError, w.Code)
	}
	// Both failures reached the handler; nothing was cached.
	require.Equal(t, 2, *calls)
}

func TestCachePageKeysAreScopedToUser(t *testing.T) {
	manager := cache.NewManager(cache.NewMemoryTier(), nil)

	userA, _ := newCacheTestRouter(manager, 1)
	w := httptest.NewRecorder()
	userA.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/fincas", nil))
	require.Equal(t, "MISS", w.Header().Get("X-Cache"))

	// A different user misses even though the URL is identical.
	userB, _ := newCacheTestRouter(manager, 2)
	w = httptest.NewRecorder()
	userB.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/fincas", nil))
	require.Equal(t, "MISS", w.Header().Get("X-Cache"))

	// Anonymous requests get their own entry as well.
	anon, _ := newCacheTestRouter(manager, 0)
	w = httptest.NewRecorder()
	anon.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/fincas", nil))
	require.Equal(t, "MISS", w.Header().Get("X-Cache"))
}

func TestInvalidateCacheOnSuccessfulMutation(t *testing.T) {
	manager := cache.NewManager(cache.NewMemoryTier(), nil)
	r, calls := newCacheTestRouter(manager, 7)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/fincas", nil))
	require.Equal(t, 1, *calls)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/fincas", nil))
	require.Equal(t, http.StatusCreated, w.Code)

	// The cached listing was invalidated, so the handler runs again.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/fincas", nil))
	require.Equal(t, "MISS", w.Header().Get("X-Cache"))
	require.Equal(t, 2, *calls)
}

func TestInvalidateCacheSkipsFailedMutation(t *testing.T) {
	manager := cache.NewManager(cache.NewMemoryTier(), nil)
	r, calls := newCacheTestRouter(manager, 7)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/fincas", nil))
	require.Equal(t, 1, *calls)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/fincas/rechazo", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Failed mutations leave the cache untouched.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/fincas", nil))
	require.Equal(t, "HIT", w.Header().Get("X-Cache"))
	require.Equal(t, 1, *calls)
}
