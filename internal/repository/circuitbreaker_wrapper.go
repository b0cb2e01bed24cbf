// Package repository provides circuit breaker wrappers for MongoDB operations.
package repository

import (
	"context"

	"github.com/guttosm/pos-checkout-service/internal/circuitbreaker"
	"github.com/guttosm/pos-checkout-service/internal/domain/model"
)

// CatalogRepositoryWithCircuitBreaker wraps CatalogRepository with
// circuit breaker protection. When the circuit is open, lookups report
// a miss so the register degrades to the local catalog snapshot instead
// of erroring on every scan.
type CatalogRepositoryWithCircuitBreaker struct {
	repo           CatalogRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewCatalogRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewCatalogRepositoryWithCircuitBreaker(repo CatalogRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *CatalogRepositoryWithCircuitBreaker {
	return &CatalogRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// ListItems returns the full catalog with circuit breaker protection.
func (r *CatalogRepositoryWithCircuitBreaker) ListItems(ctx context.Context) ([]model.CatalogItem, error) {
	var result []model.CatalogItem
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.ListItems(ctx)
		return cbErr
	})
	return result, err
}

// ListGroups returns the distinct item groups with circuit breaker protection.
func (r *CatalogRepositoryWithCircuitBreaker) ListGroups(ctx context.Context) ([]string, error) {
	var result []string
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.ListGroups(ctx)
		return cbErr
	})
	return result, err
}

// LookupByCode resolves a code with circuit breaker protection.
// An open circuit is reported as a miss.
func (r *CatalogRepositoryWithCircuitBreaker) LookupByCode(ctx context.Context, code string) (*model.LookupResult, error) {
	var result *model.LookupResult
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.LookupByCode(ctx, code)
		return cbErr
	})
	if err == circuitbreaker.ErrCircuitOpen {
		return nil, nil
	}
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *CatalogRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// AuditRepositoryWithCircuitBreaker wraps AuditRepository with circuit
// breaker protection. Audit writes are non-critical; an open circuit
// drops the entry silently.
type AuditRepositoryWithCircuitBreaker struct {
	repo           AuditRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewAuditRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewAuditRepositoryWithCircuitBreaker(repo AuditRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *AuditRepositoryWithCircuitBreaker {
	return &AuditRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Create stores one audit entry with circuit breaker protection.
func (r *AuditRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *model.AuditEntry) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	if err == circuitbreaker.ErrCircuitOpen {
		return nil
	}
	return err
}

// Query retrieves audit entries with circuit breaker protection.
func (r *AuditRepositoryWithCircuitBreaker) Query(ctx context.Context, opts model.AuditQueryOptions) ([]model.AuditEntry, error) {
	var result []model.AuditEntry
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Query(ctx, opts)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *AuditRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
