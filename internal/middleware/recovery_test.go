package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("turns a handler panic into a 500 envelope", func(t *testing.T) {
		router := gin.New()
		router.Use(RequestID(), Recovery())
		router.POST("/sessions/:sessionID/scan", func(c *gin.Context) {
			panic("decoder state corrupted")
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sessions/s1/scan", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "internal_error")
	})

	t.Run("does not touch a normal response", func(t *testing.T) {
		router := gin.New()
		router.Use(RequestID(), Recovery())
		router.GET("/healthz", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", w.Body.String())
	})
}
