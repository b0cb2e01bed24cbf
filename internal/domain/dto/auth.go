// Package dto defines Data Transfer Objects for authentication.
package dto

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoginRequest represents the JSON request body for the login endpoint.
//
// @Description Request to authenticate a cashier
// @Example {"email": "cashier@example.com", "password": "password123"}
type LoginRequest struct {
	// Email is the cashier's email address.
	Email string `json:"email" binding:"required,email" example:"cashier@example.com"`
	// Password is the cashier's password.
	Password string `json:"password" binding:"required,min=6" example:"password123"`
} // @name LoginRequest

// LoginResponse represents the JSON response body for the login endpoint.
//
// @Description Successful authentication response with JWT tokens
type LoginResponse struct {
	// Token is the JWT access token.
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	// RefreshToken is the JWT refresh token.
	RefreshToken string `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	// Cashier contains the authenticated cashier information.
	Cashier CashierResponse `json:"cashier"`
} // @name LoginResponse

// TokenPair represents access and refresh tokens (kept here to avoid
// import cycles between service and http packages).
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // seconds
}

// Claims represents the JWT claims carried by access and refresh tokens.
type Claims struct {
	CashierID primitive.ObjectID `json:"cashier_id"`
	Email     string             `json:"email"`
	Name      string             `json:"name"`
}

// CashierResponse represents cashier information in API responses.
type CashierResponse struct {
	// Email is the cashier's email address.
	Email string `json:"email" example:"cashier@example.com"`
	// Name is the cashier's full name.
	Name string `json:"name,omitempty" example:"Ana Torres"`
} // @name CashierResponse

// Validate performs custom validation on the login request.
func (r *LoginRequest) Validate() error {
	if r.Email == "" {
		return &ValidationError{
			Field:   "email",
			Message: "email is required",
		}
	}
	if len(r.Password) < 6 {
		return &ValidationError{
			Field:   "password",
			Message: "password must be at least 6 characters",
		}
	}
	return nil
}
