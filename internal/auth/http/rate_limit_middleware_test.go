package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func rateLimitedRouter(rps float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AuthenticationMiddleware(testLogger()))
	router.Use(RateLimitMiddleware(rps, burst, testLogger()))
	router.GET("/scan", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func doScan(router *gin.Engine, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/scan", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("AllowsWithinBurst", func(t *testing.T) {
		router := rateLimitedRouter(1, 3)

		for i := 0; i < 3; i++ {
			w := doScan(router, "terminal-1")
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("RejectsOverBurst", func(t *testing.T) {
		router := rateLimitedRouter(1, 2)

		doScan(router, "terminal-1")
		doScan(router, "terminal-1")
		w := doScan(router, "terminal-1")

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
		assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
	})

	t.Run("TerminalsAreIsolated", func(t *testing.T) {
		router := rateLimitedRouter(1, 1)

		assert.Equal(t, http.StatusOK, doScan(router, "terminal-1").Code)
		assert.Equal(t, http.StatusTooManyRequests, doScan(router, "terminal-1").Code)

		// A different terminal has its own bucket.
		assert.Equal(t, http.StatusOK, doScan(router, "terminal-2").Code)
	})

	t.Run("RequiresAuthenticationFirst", func(t *testing.T) {
		router := rateLimitedRouter(1, 1)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/scan", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRateLimiterStoreGetLimiter(t *testing.T) {
	store := &rateLimiterStore{rps: 10, burst: 5}

	first := store.getLimiter("terminal-1")
	second := store.getLimiter("terminal-1")
	other := store.getLimiter("terminal-2")

	assert.Same(t, first, second, "same token reuses the limiter")
	assert.NotSame(t, first, other)
}
