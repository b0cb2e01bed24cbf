// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/pos-checkout-service/internal/domain/model"
	"github.com/guttosm/pos-checkout-service/internal/repository"
)

type MockCatalogRepositoryInterface struct {
	mock.Mock
}

func (m *MockCatalogRepositoryInterface) ListItems(ctx context.Context) ([]model.CatalogItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CatalogItem), args.Error(1)
}

func (m *MockCatalogRepositoryInterface) ListGroups(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCatalogRepositoryInterface) LookupByCode(ctx context.Context, code string) (*model.LookupResult, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LookupResult), args.Error(1)
}

type MockInventoryRepositoryInterface struct {
	mock.Mock
}

func (m *MockInventoryRepositoryInterface) GetBatches(ctx context.Context, itemCode string) ([]model.BatchOption, error) {
	args := m.Called(ctx, itemCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BatchOption), args.Error(1)
}

func (m *MockInventoryRepositoryInterface) GetSerials(ctx context.Context, itemCode string) ([]string, error) {
	args := m.Called(ctx, itemCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockPriceRepositoryInterface struct {
	mock.Mock
}

func (m *MockPriceRepositoryInterface) GetUOMPrices(ctx context.Context, itemCode, customerID string) (*model.UOMPriceList, error) {
	args := m.Called(ctx, itemCode, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UOMPriceList), args.Error(1)
}

type MockCouponRepositoryInterface struct {
	mock.Mock
}

func (m *MockCouponRepositoryInterface) FindByCode(ctx context.Context, code string) (*model.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coupon), args.Error(1)
}

type MockOrderRepositoryInterface struct {
	mock.Mock
}

func (m *MockOrderRepositoryInterface) CreateDraft(ctx context.Context, order *repository.DraftOrder) (*repository.DraftOrder, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.DraftOrder), args.Error(1)
}

type MockCashierRepositoryInterface struct {
	mock.Mock
}

func (m *MockCashierRepositoryInterface) FindByEmail(ctx context.Context, email string) (*model.Cashier, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cashier), args.Error(1)
}

func (m *MockCashierRepositoryInterface) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Cashier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cashier), args.Error(1)
}

func (m *MockCashierRepositoryInterface) Create(ctx context.Context, cashier *model.Cashier) error {
	args := m.Called(ctx, cashier)
	return args.Error(0)
}

type MockTokenRepositoryInterface struct {
	mock.Mock
}

func (m *MockTokenRepositoryInterface) Create(ctx context.Context, token *model.Token) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenRepositoryInterface) Find(ctx context.Context, tokenString string) (*model.Token, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Token), args.Error(1)
}

func (m *MockTokenRepositoryInterface) Delete(ctx context.Context, tokenString string) error {
	args := m.Called(ctx, tokenString)
	return args.Error(0)
}

func (m *MockTokenRepositoryInterface) DeleteByCashier(ctx context.Context, cashierID primitive.ObjectID) error {
	args := m.Called(ctx, cashierID)
	return args.Error(0)
}

func (m *MockTokenRepositoryInterface) IsBlacklisted(ctx context.Context, tokenString string) (bool, error) {
	args := m.Called(ctx, tokenString)
	return args.Bool(0), args.Error(1)
}

type MockAuditRepositoryInterface struct {
	mock.Mock
}

func (m *MockAuditRepositoryInterface) Create(ctx context.Context, entry *model.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepositoryInterface) Query(ctx context.Context, opts model.AuditQueryOptions) ([]model.AuditEntry, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AuditEntry), args.Error(1)
}
