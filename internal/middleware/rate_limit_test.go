package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("allows requests within the limit", func(t *testing.T) {
		rl := NewRateLimiter(3, time.Minute)
		defer rl.Stop()

		router := gin.New()
		router.Use(RequestID())
		router.Use(rl.RateLimit())
		router.GET("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		for i := 0; i < 3; i++ {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
			assert.Equal(t, http.StatusOK, w.Code, "request %d", i+1)
		}
	})

	t.Run("rejects requests over the limit", func(t *testing.T) {
		rl := NewRateLimiter(2, time.Minute)
		defer rl.Stop()

		router := gin.New()
		router.Use(RequestID())
		router.Use(rl.RateLimit())
		router.GET("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		for i := 0; i < 2; i++ {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
	})

	t.Run("window reset restores the budget", func(t *testing.T) {
		rl := NewRateLimiter(1, 20*time.Millisecond)
		defer rl.Stop()

		router := gin.New()
		router.Use(RequestID())
		router.Use(rl.RateLimit())
		router.GET("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)

		time.Sleep(30 * time.Millisecond)

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("sets rate limit headers", func(t *testing.T) {
		rl := NewRateLimiter(5, time.Minute)
		defer rl.Stop()

		router := gin.New()
		router.Use(RequestID())
		router.Use(rl.RateLimit())
		router.GET("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
	})
}

func TestCashierRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("limits per cashier, not per IP", func(t *testing.T) {
		rl := NewRateLimiter(1, time.Minute)
		defer rl.Stop()

		cashierA := primitive.NewObjectID()
		cashierB := primitive.NewObjectID()

		router := gin.New()
		router.Use(RequestID())
		router.Use(func(c *gin.Context) {
			// Simulate JWT middleware from a header used only in tests.
			switch c.GetHeader("X-Test-Cashier") {
			case "a":
				c.Set("cashier_id", cashierA)
			case "b":
				c.Set("cashier_id", cashierB)
			}
		})
		router.Use(rl.CashierRateLimit())
		router.GET("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		send := func(cashier string) int {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if cashier != "" {
				req.Header.Set("X-Test-Cashier", cashier)
			}
			router.ServeHTTP(w, req)
			return w.Code
		}

		assert.Equal(t, http.StatusOK, send("a"))
		assert.Equal(t, http.StatusTooManyRequests, send("a"))
		// Different cashier from the same IP has its own budget.
		assert.Equal(t, http.StatusOK, send("b"))
	})

	t.Run("falls back to IP when unauthenticated", func(t *testing.T) {
		rl := NewRateLimiter(1, time.Minute)
		defer rl.Stop()

		router := gin.New()
		router.Use(RequestID())
		router.Use(rl.CashierRateLimit())
		router.GET("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})
}

func TestShardedRateLimiter_Stats(t *testing.T) {
	rl := NewShardedRateLimiter(10, time.Minute, 4)
	defer rl.Stop()

	rl.checkRateLimit("a")
	rl.checkRateLimit("b")
	rl.checkRateLimit("c")

	total, perShard := rl.Stats()
	assert.Equal(t, 3, total)
	assert.Len(t, perShard, 4)
}

func TestShardedRateLimiter_CleanupExpired(t *testing.T) {
	rl := NewShardedRateLimiter(10, 5*time.Millisecond, 2)
	defer rl.Stop()

	rl.checkRateLimit("stale")
	time.Sleep(15 * time.Millisecond)
	rl.cleanupExpired()

	total, _ := rl.Stats()
	assert.Zero(t, total)
}
