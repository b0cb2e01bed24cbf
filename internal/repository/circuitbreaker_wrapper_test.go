//go:build !integration

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/pos-checkout-service/internal/circuitbreaker"
	"github.com/guttosm/pos-checkout-service/internal/domain/model"
)

// stubCatalogRepo lets tests script lookup results and failures.
type stubCatalogRepo struct {
	lookupResult *model.LookupResult
	err          error
	calls        int
}

func (s *stubCatalogRepo) ListItems(ctx context.Context) ([]model.CatalogItem, error) {
	s.calls++
	return nil, s.err
}

func (s *stubCatalogRepo) ListGroups(ctx context.Context) ([]string, error) {
	s.calls++
	return nil, s.err
}

func (s *stubCatalogRepo) LookupByCode(ctx context.Context, code string) (*model.LookupResult, error) {
	s.calls++
	return s.lookupResult, s.err
}

func TestCatalogRepositoryWithCircuitBreaker_LookupByCode(t *testing.T) {
	ctx := context.Background()

	t.Run("passes through successful lookups", func(t *testing.T) {
		stub := &stubCatalogRepo{
			lookupResult: &model.LookupResult{
				Item:        model.CatalogItem{ItemCode: "9900001", ItemName: "Bananas (loose)"},
				MatchedType: model.MatchItem,
			},
		}
		wrapped := NewCatalogRepositoryWithCircuitBreaker(stub, circuitbreaker.New(circuitbreaker.DefaultConfig()))

		result, err := wrapped.LookupByCode(ctx, "9900001")
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, "9900001", result.Item.ItemCode)
	})

	t.Run("open circuit reports a miss instead of an error", func(t *testing.T) {
		stub := &stubCatalogRepo{err: errors.New("mongo down")}
		cb := circuitbreaker.New(circuitbreaker.Config{
			FailureThreshold: 2,
			SuccessThreshold: 1,
			Timeout:          time.Minute,
			Name:             "catalog-test",
		})
		wrapped := NewCatalogRepositoryWithCircuitBreaker(stub, cb)

		for i := 0; i < 2; i++ {
			_, err := wrapped.LookupByCode(ctx, "9900001")
			assert.Error(t, err)
		}
		require.True(t, cb.IsOpen())

		callsBefore := stub.calls
		result, err := wrapped.LookupByCode(ctx, "9900001")
		assert.NoError(t, err)
		assert.Nil(t, result)
		assert.Equal(t, callsBefore, stub.calls, "open circuit must not touch the backend")
	})

	t.Run("ListItems propagates errors", func(t *testing.T) {
		stub := &stubCatalogRepo{err: errors.New("mongo down")}
		wrapped := NewCatalogRepositoryWithCircuitBreaker(stub, circuitbreaker.New(circuitbreaker.DefaultConfig()))

		_, err := wrapped.ListItems(ctx)
		assert.Error(t, err)
	})
}

// stubAuditRepo records created entries.
type stubAuditRepo struct {
	entries []*model.AuditEntry
	err     error
}

func (s *stubAuditRepo) Create(ctx context.Context, entry *model.AuditEntry) error {
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, entry)
	return nil
}

func (s *stubAuditRepo) Query(ctx context.Context, opts model.AuditQueryOptions) ([]model.AuditEntry, error) {
	return nil, s.err
}

func TestAuditRepositoryWithCircuitBreaker_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("open circuit drops the entry silently", func(t *testing.T) {
		stub := &stubAuditRepo{err: errors.New("mongo down")}
		cb := circuitbreaker.New(circuitbreaker.Config{
			FailureThreshold: 1,
			SuccessThreshold: 1,
			Timeout:          time.Minute,
			Name:             "audit-test",
		})
		wrapped := NewAuditRepositoryWithCircuitBreaker(stub, cb)

		err := wrapped.Create(ctx, &model.AuditEntry{Message: "scan"})
		assert.Error(t, err)
		require.True(t, cb.IsOpen())

		err = wrapped.Create(ctx, &model.AuditEntry{Message: "scan"})
		assert.NoError(t, err)
	})
}
