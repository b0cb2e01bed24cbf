package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/pos-checkout-service/internal/middleware"
	"github.com/guttosm/pos-checkout-service/internal/service"
)

// AuthRoutes handles authentication route registration.
type AuthRoutes struct {
	handler     *AuthHandler
	authService service.AuthService
}

// NewAuthRoutes creates a new AuthRoutes instance.
func NewAuthRoutes(authService service.AuthService, audit service.AuditService) *AuthRoutes {
	return &AuthRoutes{
		handler:     NewAuthHandler(authService, audit),
		authService: authService,
	}
}

// RegisterPublicRoutes registers authentication routes that do not
// require a token.
func (r *AuthRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", r.handler.Login)
		auth.POST("/refresh", r.handler.RefreshToken)
	}
}

// GetProtectedGroup returns a router group with JWT auth and per-cashier
// rate limiting applied. Register routes and logout live under it.
func (r *AuthRoutes) GetProtectedGroup(rg *gin.RouterGroup, cfg *RouterConfig) *gin.RouterGroup {
	protected := rg.Group("")
	protected.Use(middleware.JWTAuth(r.authService))

	if cfg.RateLimit > 0 {
		cashierLimiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		protected.Use(cashierLimiter.CashierRateLimit())
	}

	return protected
}
