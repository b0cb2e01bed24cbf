package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/pos-checkout-service/internal/domain/dto"
	"github.com/guttosm/pos-checkout-service/internal/domain/model"
	"github.com/guttosm/pos-checkout-service/internal/repository"
	"github.com/guttosm/pos-checkout-service/internal/service"
)

// MockCheckoutService is a test double for service.CheckoutService.
type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) CreateSession() *service.Session {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*service.Session)
}

func (m *MockCheckoutService) Session(id string) (*service.Session, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *MockCheckoutService) CloseSession(id string) {
	m.Called(id)
}

func (m *MockCheckoutService) Scan(ctx context.Context, sess *service.Session, raw string) (service.ScanResult, error) {
	args := m.Called(ctx, sess, raw)
	return args.Get(0).(service.ScanResult), args.Error(1)
}

func (m *MockCheckoutService) Input(sess *service.Session, text string) {
	m.Called(sess, text)
}

func (m *MockCheckoutService) Projection(sess *service.Session) model.OrderProjection {
	args := m.Called(sess)
	return args.Get(0).(model.OrderProjection)
}

func (m *MockCheckoutService) SetQuantity(sess *service.Session, itemCode string, qty float64) error {
	args := m.Called(sess, itemCode, qty)
	return args.Error(0)
}

func (m *MockCheckoutService) RemoveLine(sess *service.Session, itemCode string) error {
	args := m.Called(sess, itemCode)
	return args.Error(0)
}

func (m *MockCheckoutService) SetDiscount(sess *service.Session, itemCode string, percent, amount float64) error {
	args := m.Called(sess, itemCode, percent, amount)
	return args.Error(0)
}

func (m *MockCheckoutService) SelectBatch(ctx context.Context, sess *service.Session, itemCode, batchNo string) error {
	args := m.Called(ctx, sess, itemCode, batchNo)
	return args.Error(0)
}

func (m *MockCheckoutService) SelectSerial(sess *service.Session, itemCode, serialNo string) error {
	args := m.Called(sess, itemCode, serialNo)
	return args.Error(0)
}

func (m *MockCheckoutService) SelectUOM(ctx context.Context, sess *service.Session, itemCode, uom string) error {
	args := m.Called(ctx, sess, itemCode, uom)
	return args.Error(0)
}

func (m *MockCheckoutService) ApplyCoupon(ctx context.Context, sess *service.Session, code string) error {
	args := m.Called(ctx, sess, code)
	return args.Error(0)
}

func (m *MockCheckoutService) RemoveCoupon(sess *service.Session, code string) error {
	args := m.Called(sess, code)
	return args.Error(0)
}

func (m *MockCheckoutService) SetCustomer(sess *service.Session, customerID string) {
	m.Called(sess, customerID)
}

func (m *MockCheckoutService) ClearCart(sess *service.Session) {
	m.Called(sess)
}

func (m *MockCheckoutService) Hold(ctx context.Context, sess *service.Session, cashierID string) (*repository.DraftOrder, error) {
	args := m.Called(ctx, sess, cashierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.DraftOrder), args.Error(1)
}

// MockCatalogService is a test double for service.CatalogService.
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Items(group, search string) []model.CatalogItem {
	args := m.Called(group, search)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]model.CatalogItem)
}

func (m *MockCatalogService) Groups() []string {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func (m *MockCatalogService) FindLocal(code string) (model.CatalogItem, bool) {
	args := m.Called(code)
	return args.Get(0).(model.CatalogItem), args.Bool(1)
}

func (m *MockCatalogService) Lookup(ctx context.Context, code string) (*model.LookupResult, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LookupResult), args.Error(1)
}

func (m *MockCatalogService) Refresh(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCatalogService) Stop() {
	m.Called()
}

// MockItemOptionsService is a test double for service.ItemOptionsService.
type MockItemOptionsService struct {
	mock.Mock
}

func (m *MockItemOptionsService) Options(ctx context.Context, itemCode string) (model.ItemOptions, error) {
	args := m.Called(ctx, itemCode)
	return args.Get(0).(model.ItemOptions), args.Error(1)
}

func (m *MockItemOptionsService) BatchQty(ctx context.Context, itemCode, batchID string) float64 {
	args := m.Called(ctx, itemCode, batchID)
	return args.Get(0).(float64)
}

func (m *MockItemOptionsService) Invalidate(itemCode string) {
	m.Called(itemCode)
}

func (m *MockItemOptionsService) Stop() {
	m.Called()
}

// MockUOMService is a test double for service.UOMService.
type MockUOMService struct {
	mock.Mock
}

func (m *MockUOMService) Prices(ctx context.Context, itemCode, customerID string) (*model.UOMPriceList, error) {
	args := m.Called(ctx, itemCode, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UOMPriceList), args.Error(1)
}

func (m *MockUOMService) Stop() {
	m.Called()
}

// MockAuthService is a test double for service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*dto.TokenPair, *model.Cashier, error) {
	args := m.Called(ctx, email, password)
	var pair *dto.TokenPair
	if args.Get(0) != nil {
		pair = args.Get(0).(*dto.TokenPair)
	}
	var cashier *model.Cashier
	if args.Get(1) != nil {
		cashier = args.Get(1).(*model.Cashier)
	}
	return pair, cashier, args.Error(2)
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenPair), args.Error(1)
}

func (m *MockAuthService) ValidateToken(ctx context.Context, tokenString string) (*dto.Claims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Claims), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	args := m.Called(ctx, accessToken, refreshToken)
	return args.Error(0)
}

// MockAuditService is a test double for service.AuditService.
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(entry *model.AuditEntry) {
	m.Called(entry)
}

func (m *MockAuditService) Query(ctx context.Context, opts model.AuditQueryOptions) ([]model.AuditEntry, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AuditEntry), args.Error(1)
}

func (m *MockAuditService) Close() {
	m.Called()
}
