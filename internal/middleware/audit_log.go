// Package middleware provides audit logging utilities.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pos-checkout-service/internal/domain/model"
	"github.com/guttosm/pos-checkout-service/internal/service"
)

// AuditLog records a cashier action on the audit trail. Use it for actions
// worth tracing after the fact: login, logout, holds, voids.
func AuditLog(auditService service.AuditService, c *gin.Context, actionType string, message string, fields map[string]interface{}) {
	if auditService == nil {
		return
	}

	auditService.Record(&model.AuditEntry{
		Timestamp:  time.Now(),
		Level:      "info",
		Message:    message,
		RequestID:  GetRequestID(c),
		SessionID:  c.Param("sessionID"),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		CashierID:  cashierIDFromContext(c),
		ActionType: actionType,
		Fields:     fields,
	})
}

// AuditLogError records a failed cashier action on the audit trail.
func AuditLogError(auditService service.AuditService, c *gin.Context, actionType string, message string, err error, fields map[string]interface{}) {
	if auditService == nil {
		return
	}

	if fields == nil {
		fields = make(map[string]interface{})
	}
	if err != nil {
		fields["error"] = err.Error()
	}

	auditService.Record(&model.AuditEntry{
		Timestamp:  time.Now(),
		Level:      "error",
		Message:    message,
		RequestID:  GetRequestID(c),
		SessionID:  c.Param("sessionID"),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		CashierID:  cashierIDFromContext(c),
		ActionType: actionType,
		Fields:     fields,
	})
}
