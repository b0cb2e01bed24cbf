// Package app provides database initialization and setup.
package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/pos-checkout-service/config"
	"github.com/guttosm/pos-checkout-service/internal/circuitbreaker"
	"github.com/guttosm/pos-checkout-service/internal/repository"
)

// ErrDatabaseDisabled is returned when MongoDB is switched off in the
// configuration. The checkout service cannot run without its catalog
// and order store.
var ErrDatabaseDisabled = errors.New("mongodb is disabled; the checkout service requires a database")

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB *repository.MongoDB

	CatalogRepo   repository.CatalogRepositoryInterface
	InventoryRepo repository.InventoryRepositoryInterface
	PriceRepo     repository.PriceRepositoryInterface
	CouponRepo    repository.CouponRepositoryInterface
	OrderRepo     repository.OrderRepositoryInterface
	CashierRepo   repository.CashierRepositoryInterface
	TokenRepo     repository.TokenRepositoryInterface
	AuditRepo     repository.AuditRepositoryInterface

	CatalogCircuitBreaker *circuitbreaker.CircuitBreaker
	AuditCircuitBreaker   *circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to MongoDB and creates the repositories.
// The catalog and audit repositories are wrapped in circuit breakers:
// the catalog because every scan miss falls through to it, the audit
// trail because it must never take the cart down with it.
func InitializeDatabase(cfg config.DatabaseConfig) (*DatabaseComponents, error) {
	if !cfg.Enabled {
		return nil, ErrDatabaseDisabled
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		return nil, err
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	ttlDays := int(cfg.LogsTTL.Hours() / 24)
	if err := db.SetAuditTTL(context.Background(), ttlDays); err != nil {
		log.Warn().Err(err).Msg("Failed to set audit TTL index (may already exist)")
	}

	catalogCB := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             "mongodb-catalog",
	})

	auditCB := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             "mongodb-audit",
	})

	catalogRepo := repository.NewCatalogRepositoryWithCircuitBreaker(repository.NewCatalogRepository(db), catalogCB)
	auditRepo := repository.NewAuditRepositoryWithCircuitBreaker(repository.NewAuditRepository(db), auditCB)

	components := &DatabaseComponents{
		DB:                    db,
		CatalogRepo:           catalogRepo,
		InventoryRepo:         repository.NewInventoryRepository(db),
		PriceRepo:             repository.NewPriceRepository(db),
		CouponRepo:            repository.NewCouponRepository(db),
		OrderRepo:             repository.NewOrderRepository(db),
		CashierRepo:           repository.NewCashierRepository(db),
		TokenRepo:             repository.NewTokenRepository(db),
		AuditRepo:             auditRepo,
		CatalogCircuitBreaker: catalogCB,
		AuditCircuitBreaker:   auditCB,
	}

	if err := ensureDefaultCashier(components.CashierRepo); err != nil {
		log.Warn().Err(err).Msg("Failed to seed default cashier")
	}

	return components, nil
}

// Close disconnects from MongoDB.
func (d *DatabaseComponents) Close(ctx context.Context) {
	if d == nil || d.DB == nil {
		return
	}
	if err := d.DB.Close(ctx); err != nil {
		log.Warn().Err(err).Msg("Error closing MongoDB connection")
	}
}
