package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestDefaultTimeoutConfig(t *testing.T) {
	cfg := DefaultTimeoutConfig()

	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "Request timeout", cfg.ErrorMessage)
}

func TestTimeout_CompletesWithinDeadline(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name         string
		timeout      time.Duration
		handlerDelay time.Duration
	}{
		{name: "instant handler", timeout: time.Second},
		{name: "slow lookup still inside the deadline", timeout: time.Second, handlerDelay: 10 * time.Millisecond},
		{name: "tight deadline, fast handler", timeout: 100 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(Timeout(TimeoutConfig{Timeout: tt.timeout, ErrorMessage: "timeout"}))
			router.GET("/items", func(c *gin.Context) {
				if tt.handlerDelay > 0 {
					time.Sleep(tt.handlerDelay)
				}
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items", nil))

			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestTimeoutWithDuration(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(TimeoutWithDuration(500 * time.Millisecond))
	router.GET("/items", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTimeout_SetsContextDeadline(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Repository calls read the deadline off the request context, so
	// the middleware must install one.
	var hasDeadline bool
	router := gin.New()
	router.Use(Timeout(TimeoutConfig{Timeout: time.Second, ErrorMessage: "timeout"}))
	router.GET("/items", func(c *gin.Context) {
		_, hasDeadline = c.Request.Context().Deadline()
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items", nil))

	assert.True(t, hasDeadline)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTimeout_RepeatedRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Timeout(TimeoutConfig{Timeout: 100 * time.Millisecond, ErrorMessage: "timeout"}))
	router.GET("/items", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
