package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/pos-checkout-service/internal/domain/model"
	"github.com/guttosm/pos-checkout-service/internal/metrics"
	"github.com/guttosm/pos-checkout-service/internal/repository"
)

// CatalogService defines catalog browsing and code resolution backed by
// an in-memory snapshot with remote fallback.
type CatalogService interface {
	// Items returns snapshot items, optionally filtered by group and a
	// case-insensitive search term over name, code, and barcode.
	Items(group, search string) []model.CatalogItem

	// Groups returns the distinct item groups in the snapshot.
	Groups() []string

	// FindLocal resolves a code against the snapshot by item code or
	// item barcode.
	FindLocal(code string) (model.CatalogItem, bool)

	// Lookup resolves a code remotely, falling through batch and serial
	// barcodes. A miss is (nil, nil).
	Lookup(ctx context.Context, code string) (*model.LookupResult, error)

	// Refresh reloads the snapshot from the catalog repository.
	Refresh(ctx context.Context) error

	// Stop terminates the background refresh loop.
	Stop()
}

// CatalogServiceImpl keeps the catalog in memory so the scan path never
// waits on MongoDB for items it has already seen. The snapshot refreshes
// on an interval; scans that miss it fall through to Lookup.
type CatalogServiceImpl struct {
	repo repository.CatalogRepositoryInterface

	mu        sync.RWMutex
	items     []model.CatalogItem
	byCode    map[string]int
	byBarcode map[string]int
	groups    []string

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewCatalogService creates a catalog service and starts its refresh
// loop (interval <= 0 disables periodic refresh).
func NewCatalogService(repo repository.CatalogRepositoryInterface, refreshInterval time.Duration) *CatalogServiceImpl {
	s := &CatalogServiceImpl{
		repo:      repo,
		byCode:    make(map[string]int),
		byBarcode: make(map[string]int),
		stopCh:    make(chan struct{}),
	}
	if refreshInterval > 0 {
		go s.refreshLoop(refreshInterval)
	}
	return s
}

// Refresh reloads the snapshot from the catalog repository.
func (s *CatalogServiceImpl) Refresh(ctx context.Context) error {
	start := time.Now()
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		metrics.RecordLookup("snapshot", "error", time.Since(start))
		return err
	}
	metrics.RecordLookup("snapshot", "ok", time.Since(start))

	byCode := make(map[string]int, len(items))
	byBarcode := make(map[string]int)
	groupSet := make(map[string]struct{})
	for i, item := range items {
		byCode[item.ItemCode] = i
		if item.Barcode != "" {
			byBarcode[item.Barcode] = i
		}
		if item.ItemGroup != "" {
			groupSet[item.ItemGroup] = struct{}{}
		}
	}
	groups := make([]string, 0, len(groupSet))
	for g := range groupSet {
		groups = append(groups, g)
	}

	s.mu.Lock()
	s.items = items
	s.byCode = byCode
	s.byBarcode = byBarcode
	s.groups = groups
	s.mu.Unlock()

	log.Debug().Int("items", len(items)).Msg("Catalog snapshot refreshed")
	return nil
}

// Items returns snapshot items filtered by group and search term.
func (s *CatalogServiceImpl) Items(group, search string) []model.CatalogItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]model.CatalogItem, 0, len(s.items))
	for _, item := range s.items {
		if group != "" && item.ItemGroup != group {
			continue
		}
		if search != "" && !matchesSearch(item, search) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesSearch(item model.CatalogItem, term string) bool {
	return strings.Contains(strings.ToLower(item.ItemName), term) ||
		strings.Contains(strings.ToLower(item.ItemCode), term) ||
		(item.Barcode != "" && strings.Contains(strings.ToLower(item.Barcode), term))
}

// Groups returns the distinct item groups in the snapshot.
func (s *CatalogServiceImpl) Groups() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.groups))
	copy(out, s.groups)
	return out
}

// FindLocal resolves a code against the snapshot.
func (s *CatalogServiceImpl) FindLocal(code string) (model.CatalogItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i, ok := s.byCode[code]; ok {
		return s.items[i], true
	}
	if i, ok := s.byBarcode[code]; ok {
		return s.items[i], true
	}
	return model.CatalogItem{}, false
}

// Lookup resolves a code remotely through the catalog repository.
func (s *CatalogServiceImpl) Lookup(ctx context.Context, code string) (*model.LookupResult, error) {
	start := time.Now()
	result, err := s.repo.LookupByCode(ctx, code)
	switch {
	case err != nil:
		metrics.RecordLookup("code", "error", time.Since(start))
	case result == nil:
		metrics.RecordLookup("code", "miss", time.Since(start))
	default:
		metrics.RecordLookup("code", "hit", time.Since(start))
	}
	return result, err
}

// Stop terminates the background refresh loop.
func (s *CatalogServiceImpl) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

func (s *CatalogServiceImpl) refreshLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := s.Refresh(ctx); err != nil {
				log.Warn().Err(err).Msg("Catalog snapshot refresh failed")
			}
			cancel()
		case <-s.stopCh:
			return
		}
	}
}
