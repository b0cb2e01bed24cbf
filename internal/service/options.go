package service

import (
	"context"
	"time"

	"github.com/guttosm/pos-checkout-service/internal/domain/model"
	"github.com/guttosm/pos-checkout-service/internal/repository"
)

// ItemOptionsService defines batch/serial option reads for an item.
type ItemOptionsService interface {
	// Options returns the batch and serial choices for an item, cached.
	Options(ctx context.Context, itemCode string) (model.ItemOptions, error)

	// BatchQty returns the available quantity of one batch, zero when
	// the batch is unknown.
	BatchQty(ctx context.Context, itemCode, batchID string) float64

	// Invalidate drops the cached options for an item.
	Invalidate(itemCode string)

	// Stop shuts down the option cache.
	Stop()
}

// ItemOptionsServiceImpl serves batch/serial options from a TTL cache in
// front of the inventory repository.
type ItemOptionsServiceImpl struct {
	repo  repository.InventoryRepositoryInterface
	cache *ttlCache[model.ItemOptions]
}

// NewItemOptionsService creates an item options service.
func NewItemOptionsService(repo repository.InventoryRepositoryInterface, cacheSize int, cacheTTL time.Duration) *ItemOptionsServiceImpl {
	return &ItemOptionsServiceImpl{
		repo:  repo,
		cache: newTTLCache[model.ItemOptions](cacheSize, cacheTTL),
	}
}

// Options returns the batch and serial choices for an item.
func (s *ItemOptionsServiceImpl) Options(ctx context.Context, itemCode string) (model.ItemOptions, error) {
	if cached, ok := s.cache.Get(itemCode); ok {
		return cached, nil
	}

	batches, err := s.repo.GetBatches(ctx, itemCode)
	if err != nil {
		return model.ItemOptions{}, err
	}
	serials, err := s.repo.GetSerials(ctx, itemCode)
	if err != nil {
		return model.ItemOptions{}, err
	}

	opts := model.ItemOptions{
		ItemCode: itemCode,
		Batches:  batches,
		Serials:  serials,
	}
	s.cache.Set(itemCode, opts)
	return opts, nil
}

// BatchQty returns the available quantity of one batch. Option fetch
// failures degrade to zero rather than blocking the selection.
func (s *ItemOptionsServiceImpl) BatchQty(ctx context.Context, itemCode, batchID string) float64 {
	opts, err := s.Options(ctx, itemCode)
	if err != nil {
		return 0
	}
	for _, b := range opts.Batches {
		if b.BatchID == batchID {
			return b.Qty
		}
	}
	return 0
}

// Invalidate drops the cached options for an item.
func (s *ItemOptionsServiceImpl) Invalidate(itemCode string) {
	s.cache.Invalidate(itemCode)
}

// Stop shuts down the option cache.
func (s *ItemOptionsServiceImpl) Stop() {
	s.cache.Stop()
}
