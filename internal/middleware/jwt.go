// Package middleware provides JWT authentication middleware.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/pos-checkout-service/internal/i18n"
	"github.com/guttosm/pos-checkout-service/internal/service"
)

// JWTAuth authenticates the calling cashier from a Bearer token and stashes
// the claims in the gin context for handlers and the per-cashier rate
// limiter.
func JWTAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			rejectUnauthorized(c, i18n.ErrKeyTokenRequired)
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			rejectUnauthorized(c, i18n.ErrKeyInvalidToken)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			rejectUnauthorized(c, i18n.ErrKeyTokenRequired)
			return
		}

		claims, err := authService.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			rejectUnauthorized(c, i18n.ErrKeyInvalidToken)
			return
		}

		c.Set("cashier_id", claims.CashierID)
		c.Set("cashier_email", claims.Email)
		c.Set("cashier_name", claims.Name)
		c.Set("cashier_claims", claims)

		c.Next()
	}
}
