package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/guttosm/pos-checkout-service/internal/circuitbreaker"
)

type stubChecker struct {
	err error
}

func (s stubChecker) Check() error { return s.err }

func TestHealthHandler_Liveness(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	NewHealthHandler().Register(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestHealthHandler_Readiness(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		setupHandler   func() *HealthHandler
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "ready with nothing registered",
			setupHandler:   NewHealthHandler,
			expectedStatus: http.StatusOK,
			expectedBody:   `"service":"ok"`,
		},
		{
			name: "ready with a healthy mongodb checker",
			setupHandler: func() *HealthHandler {
				handler := NewHealthHandler()
				handler.RegisterChecker("mongodb", stubChecker{})
				return handler
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"mongodb":"ok"`,
		},
		{
			name: "degraded when mongodb is down",
			setupHandler: func() *HealthHandler {
				handler := NewHealthHandler()
				handler.RegisterChecker("mongodb", stubChecker{err: errors.New("connection refused")})
				return handler
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `"status":"degraded"`,
		},
		{
			name: "ready with a closed catalog breaker",
			setupHandler: func() *HealthHandler {
				handler := NewHealthHandler()
				cb := circuitbreaker.New(circuitbreaker.DefaultConfig())
				handler.RegisterCircuitBreaker("catalog", cb)
				return handler
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"catalog_circuit":"closed"`,
		},
		{
			name: "degraded when the catalog breaker is open",
			setupHandler: func() *HealthHandler {
				handler := NewHealthHandler()
				cb := circuitbreaker.New(circuitbreaker.Config{
					FailureThreshold: 1,
					SuccessThreshold: 1,
					Timeout:          time.Minute,
					Name:             "catalog",
				})
				_ = cb.Execute(context.Background(), func() error {
					return errors.New("lookup failed")
				})
				handler.RegisterCircuitBreaker("catalog", cb)
				return handler
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `"catalog_circuit":"open"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			tt.setupHandler().Register(router)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}
