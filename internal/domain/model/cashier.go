package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cashier is a register operator account. Passwords are stored as
// bcrypt hashes and never serialized.
type Cashier struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name" json:"name"`
	Password  string             `bson:"password" json:"-"`
	Active    bool               `bson:"active" json:"active"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// Token is a persisted refresh token or blacklisted access token.
// Expired documents are removed by a TTL index on expires_at.
type Token struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CashierID primitive.ObjectID `bson:"cashier_id" json:"cashier_id"`
	Token     string             `bson:"token" json:"token"`
	Type      string             `bson:"type" json:"type"` // "refresh" or "blacklist"
	ExpiresAt time.Time          `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Token types.
const (
	TokenTypeRefresh   = "refresh"
	TokenTypeBlacklist = "blacklist"
)
