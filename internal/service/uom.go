package service

import (
	"context"
	"time"

	"github.com/guttosm/pos-checkout-service/internal/domain/model"
	"github.com/guttosm/pos-checkout-service/internal/metrics"
	"github.com/guttosm/pos-checkout-service/internal/repository"
)

// UOMService defines per-UOM price list reads.
type UOMService interface {
	// Prices returns the UOM price list for an item, resolved against
	// the customer's price list when one exists. A miss is (nil, nil).
	Prices(ctx context.Context, itemCode, customerID string) (*model.UOMPriceList, error)

	// Stop shuts down the price cache.
	Stop()
}

// UOMServiceImpl serves UOM price lists from a TTL cache in front of the
// price repository. Cache entries are keyed by item code and customer so
// customer-specific lists never leak across sessions.
type UOMServiceImpl struct {
	repo  repository.PriceRepositoryInterface
	cache *ttlCache[*model.UOMPriceList]
}

// NewUOMService creates a UOM price service.
func NewUOMService(repo repository.PriceRepositoryInterface, cacheSize int, cacheTTL time.Duration) *UOMServiceImpl {
	return &UOMServiceImpl{
		repo:  repo,
		cache: newTTLCache[*model.UOMPriceList](cacheSize, cacheTTL),
	}
}

// Prices returns the UOM price list for an item.
func (s *UOMServiceImpl) Prices(ctx context.Context, itemCode, customerID string) (*model.UOMPriceList, error) {
	key := itemCode + "|" + customerID
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	start := time.Now()
	list, err := s.repo.GetUOMPrices(ctx, itemCode, customerID)
	switch {
	case err != nil:
		metrics.RecordLookup("uom_prices", "error", time.Since(start))
		return nil, err
	case list == nil:
		metrics.RecordLookup("uom_prices", "miss", time.Since(start))
		return nil, nil
	}
	metrics.RecordLookup("uom_prices", "hit", time.Since(start))

	s.cache.Set(key, list)
	return list, nil
}

// Stop shuts down the price cache.
func (s *UOMServiceImpl) Stop() {
	s.cache.Stop()
}
