package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/pos-checkout-service/internal/domain/model"
	"github.com/guttosm/pos-checkout-service/internal/logger"
	"github.com/guttosm/pos-checkout-service/internal/service"
)

// RequestLogger returns a middleware that logs HTTP request details in JSON
// format and records them on the audit trail. Audit persistence is queued on
// the audit service's buffered writer, so the request never waits on MongoDB.
func RequestLogger(auditService service.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := GetRequestID(c)

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		method := c.Request.Method
		path := c.Request.URL.Path
		ip := c.ClientIP()

		log := logger.Logger().With().
			Str("request_id", requestID).
			Str("method", method).
			Str("path", path).
			Int("status_code", statusCode).
			Int64("duration_ms", latency.Milliseconds()).
			Str("ip", ip).
			Str("user_agent", c.Request.UserAgent()).
			Logger()

		switch {
		case statusCode >= 500:
			log.Error().Msg("HTTP request")
		case statusCode >= 400:
			log.Warn().Msg("HTTP request")
		default:
			log.Info().Msg("HTTP request")
		}

		if auditService != nil {
			entry := &model.AuditEntry{
				Timestamp:  time.Now(),
				Level:      getLogLevel(statusCode),
				Message:    "HTTP request",
				RequestID:  requestID,
				SessionID:  c.Param("sessionID"),
				Method:     method,
				Path:       path,
				StatusCode: statusCode,
				Duration:   latency.Milliseconds(),
				IP:         ip,
				CashierID:  cashierIDFromContext(c),
			}
			auditService.Record(entry)
		}
	}
}

// cashierIDFromContext returns the authenticated cashier id, if any.
func cashierIDFromContext(c *gin.Context) string {
	if cashierID, exists := c.Get("cashier_id"); exists {
		if id, ok := cashierID.(primitive.ObjectID); ok {
			return id.Hex()
		}
	}
	return ""
}

// getLogLevel returns the log level based on HTTP status code.
func getLogLevel(statusCode int) string {
	switch {
	case statusCode >= 500:
		return "error"
	case statusCode >= 400:
		return "warn"
	default:
		return "info"
	}
}
