package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewError(t *testing.T) {
	e := NewError(ErrCodeInvalidRequest, "scale barcode check digit mismatch")

	assert.Equal(t, ErrCodeInvalidRequest, e.Error)
	assert.Equal(t, "scale barcode check digit mismatch", e.Message)
	assert.False(t, e.Timestamp.IsZero())
	assert.Empty(t, e.RequestID)

	withID := e.WithRequestID("req-1")
	assert.Equal(t, "req-1", withID.RequestID)
	assert.Empty(t, e.RequestID, "WithRequestID must not mutate the receiver")
}

func TestErrCodeFromStatus(t *testing.T) {
	tests := []struct {
		status   int
		expected string
	}{
		{http.StatusBadRequest, ErrCodeInvalidRequest},
		{http.StatusUnauthorized, ErrCodeUnauthorized},
		{http.StatusForbidden, ErrCodeForbidden},
		{http.StatusNotFound, ErrCodeNotFound},
		{http.StatusConflict, ErrCodeConflict},
		{http.StatusTooManyRequests, ErrCodeRateLimit},
		{http.StatusRequestTimeout, ErrCodeTimeout},
		{http.StatusGatewayTimeout, ErrCodeTimeout},
		{http.StatusInternalServerError, ErrCodeInternal},
		{http.StatusBadGateway, ErrCodeInternal},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ErrCodeFromStatus(tt.status), "status %d", tt.status)
	}
}
