package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditEntry is an audit/access log document. HTTP requests and cart
// mutations both land here; Fields carries action-specific context such
// as the scanned code or decoded quantity.
type AuditEntry struct {
	ID         primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Timestamp  time.Time              `bson:"timestamp" json:"timestamp"`
	Level      string                 `bson:"level" json:"level"`
	Message    string                 `bson:"message" json:"message"`
	RequestID  string                 `bson:"request_id,omitempty" json:"request_id,omitempty"`
	SessionID  string                 `bson:"session_id,omitempty" json:"session_id,omitempty"`
	Method     string                 `bson:"method,omitempty" json:"method,omitempty"`
	Path       string                 `bson:"path,omitempty" json:"path,omitempty"`
	StatusCode int                    `bson:"status_code,omitempty" json:"status_code,omitempty"`
	Duration   int64                  `bson:"duration_ms,omitempty" json:"duration_ms,omitempty"`
	IP         string                 `bson:"ip,omitempty" json:"ip,omitempty"`
	CashierID  string                 `bson:"cashier_id,omitempty" json:"cashier_id,omitempty"`
	// ActionType tags cart mutations, e.g. "scan", "add_item", "apply_coupon", "hold_order"
	ActionType string                 `bson:"action_type,omitempty" json:"action_type,omitempty"`
	Fields     map[string]interface{} `bson:"fields,omitempty" json:"fields,omitempty"`
}

// WithField attaches one context field, initializing the map lazily.
func (e *AuditEntry) WithField(key string, value interface{}) *AuditEntry {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// AuditQueryOptions filters audit log queries.
type AuditQueryOptions struct {
	RequestID  string
	SessionID  string
	ActionType string
	Level      string
	StartTime  *time.Time
	EndTime    *time.Time
	Limit      int
	Skip       int
}
