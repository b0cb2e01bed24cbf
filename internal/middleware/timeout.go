package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/pos-checkout-service/internal/domain/dto"
	"github.com/guttosm/pos-checkout-service/internal/i18n"
)

// TimeoutConfig holds configuration for the timeout middleware.
type TimeoutConfig struct {
	// Timeout bounds how long a single request may run. Catalog lookups
	// and order writes inherit it through the request context.
	Timeout time.Duration
	// ErrorMessage is returned when no translator is installed.
	ErrorMessage string
}

// DefaultTimeoutConfig returns the standard timeout configuration.
func DefaultTimeoutConfig() TimeoutConfig {
	return TimeoutConfig{
		Timeout:      30 * time.Second,
		ErrorMessage: "Request timeout",
	}
}

// Timeout installs a deadline on the request context and answers 504 when
// the handler blows through it. The handler keeps running in its goroutine;
// repository calls notice the cancelled context and bail out on their own.
func Timeout(cfg TimeoutConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.Timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		var mu sync.Mutex
		var finished bool
		done := make(chan struct{})

		go func() {
			defer func() {
				recover() //nolint:errcheck
				close(done)
			}()
			c.Next()
			mu.Lock()
			finished = true
			mu.Unlock()
		}()

		select {
		case <-done:
			return
		case <-ctx.Done():
			mu.Lock()
			defer mu.Unlock()
			if finished || c.Writer.Written() {
				return
			}
			writeTimeoutResponse(c, cfg.ErrorMessage)
		}
	}
}

func writeTimeoutResponse(c *gin.Context, fallback string) {
	message := fallback
	if translator := i18n.GetTranslator(); translator != nil {
		message = translator.Translate(i18n.ErrKeyTimeout, i18n.GetLocale(c))
	}

	errorResp := dto.NewError(dto.ErrCodeTimeout, message).
		WithRequestID(GetRequestID(c))
	c.AbortWithStatusJSON(http.StatusGatewayTimeout, errorResp)
}

// TimeoutWithDuration builds a timeout middleware with the given deadline
// and default messaging.
func TimeoutWithDuration(timeout time.Duration) gin.HandlerFunc {
	cfg := DefaultTimeoutConfig()
	cfg.Timeout = timeout
	return Timeout(cfg)
}
