// Package app provides service initialization.
package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/pos-checkout-service/config"
	"github.com/guttosm/pos-checkout-service/internal/barcode"
	"github.com/guttosm/pos-checkout-service/internal/service"
)

// ServiceComponents holds the business services behind the HTTP layer.
type ServiceComponents struct {
	Catalog  service.CatalogService
	Options  service.ItemOptionsService
	UOMs     service.UOMService
	Audit    service.AuditService
	Auth     service.AuthService
	Checkout service.CheckoutService
	Sessions *service.SessionManager
}

// InitializeServices wires the checkout engine and its supporting
// services on top of the repositories.
func InitializeServices(cfg config.Config, db *DatabaseComponents) (*ServiceComponents, error) {
	decoder, err := barcode.NewDecoder(cfg.Scan.ScalePrefix)
	if err != nil {
		return nil, err
	}

	sessions := service.NewSessionManager(cfg.Session.TTL)
	catalog := service.NewCatalogService(db.CatalogRepo, cfg.Catalog.RefreshInterval)
	options := service.NewItemOptionsService(db.InventoryRepo, cfg.Cache.Size, cfg.Cache.TTL)
	uoms := service.NewUOMService(db.PriceRepo, cfg.Cache.Size, cfg.Cache.TTL)
	audit := service.NewAuditService(db.AuditRepo, cfg.Audit.BufferSize)

	checkout := service.NewCheckoutService(
		decoder,
		catalog,
		options,
		uoms,
		db.CouponRepo,
		db.OrderRepo,
		sessions,
		audit,
		service.CheckoutConfig{
			ScannerOnly:  cfg.Scan.ScannerOnly,
			DetectWindow: cfg.Scan.DetectWindow,
		},
	)

	// Cashier JWT auth. Static API keys, when configured, take
	// precedence as the simpler scheme for kiosk deployments.
	var auth service.AuthService
	if cfg.Auth.Enabled && len(cfg.Auth.APIKeys) == 0 {
		auth = service.NewAuthService(db.CashierRepo, db.TokenRepo, cfg.Auth)
	}

	// Warm the catalog snapshot so the first scans resolve locally.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := catalog.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("Initial catalog refresh failed; scans fall through to remote lookup")
	}

	return &ServiceComponents{
		Catalog:  catalog,
		Options:  options,
		UOMs:     uoms,
		Audit:    audit,
		Auth:     auth,
		Checkout: checkout,
		Sessions: sessions,
	}, nil
}

// Shutdown stops background loops and flushes the audit queue.
func (s *ServiceComponents) Shutdown() {
	if s == nil {
		return
	}
	s.Sessions.Stop()
	s.Catalog.Stop()
	s.Options.Stop()
	s.UOMs.Stop()
	s.Audit.Close()
}
