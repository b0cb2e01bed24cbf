// Package app provides router configuration.
package app

import (
	"context"
	"time"

	"github.com/guttosm/pos-checkout-service/config"
	"github.com/guttosm/pos-checkout-service/internal/http"
	"github.com/guttosm/pos-checkout-service/internal/repository"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler        *http.Handler
	CatalogHandler *http.CatalogHandler
	HealthHandler  *http.HealthHandler
	Config         http.RouterConfig
}

// mongoHealthChecker adapts the MongoDB ping to the health endpoint.
type mongoHealthChecker struct {
	db *repository.MongoDB
}

func (c mongoHealthChecker) Check() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return c.db.HealthCheck(ctx)
}

// InitializeRouter initializes HTTP handlers and router configuration.
func InitializeRouter(
	services *ServiceComponents,
	db *DatabaseComponents,
	cfg config.Config,
) *RouterComponents {
	handler := http.NewHandler(services.Checkout, services.Audit)
	catalogHandler := http.NewCatalogHandler(services.Catalog, services.Options, services.UOMs)
	healthHandler := http.NewHealthHandler()

	if db.DB != nil {
		healthHandler.RegisterChecker("mongodb", mongoHealthChecker{db: db.DB})
	}
	if db.CatalogCircuitBreaker != nil {
		healthHandler.RegisterCircuitBreaker("mongodb_catalog", db.CatalogCircuitBreaker)
	}
	if db.AuditCircuitBreaker != nil {
		healthHandler.RegisterCircuitBreaker("mongodb_audit", db.AuditCircuitBreaker)
	}

	routerCfg := http.RouterConfig{
		RateLimit:         cfg.Server.RateLimit,
		RateWindow:        cfg.Server.RateWindow,
		EnableAuth:        cfg.Auth.Enabled,
		APIKeys:           cfg.Auth.APIKeys,
		EnableIdempotency: true,
		CORSOrigins:       cfg.Server.CORSOrigins,
		SwaggerUser:       cfg.Server.SwaggerUser,
		SwaggerPass:       cfg.Server.SwaggerPass,
		AuditService:      services.Audit,
		AuthService:       services.Auth,
	}

	return &RouterComponents{
		Handler:        handler,
		CatalogHandler: catalogHandler,
		HealthHandler:  healthHandler,
		Config:         routerCfg,
	}
}
