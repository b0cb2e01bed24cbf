// Package repository provides interfaces for repository operations.
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/pos-checkout-service/internal/domain/model"
)

// CatalogRepositoryInterface defines catalog read operations. A miss is
// a nil result with a nil error; errors mean the backend failed.
type CatalogRepositoryInterface interface {
	ListItems(ctx context.Context) ([]model.CatalogItem, error)
	ListGroups(ctx context.Context) ([]string, error)
	LookupByCode(ctx context.Context, code string) (*model.LookupResult, error)
}

// InventoryRepositoryInterface defines batch and serial option reads.
type InventoryRepositoryInterface interface {
	GetBatches(ctx context.Context, itemCode string) ([]model.BatchOption, error)
	GetSerials(ctx context.Context, itemCode string) ([]string, error)
}

// PriceRepositoryInterface defines UOM price list reads. customerID may
// be empty for the standard selling price list.
type PriceRepositoryInterface interface {
	GetUOMPrices(ctx context.Context, itemCode, customerID string) (*model.UOMPriceList, error)
}

// CouponRepositoryInterface defines gift coupon reads.
type CouponRepositoryInterface interface {
	FindByCode(ctx context.Context, code string) (*model.Coupon, error)
}

// OrderRepositoryInterface persists held (draft) orders.
type OrderRepositoryInterface interface {
	CreateDraft(ctx context.Context, order *DraftOrder) (*DraftOrder, error)
}

// CashierRepositoryInterface defines cashier account operations.
type CashierRepositoryInterface interface {
	FindByEmail(ctx context.Context, email string) (*model.Cashier, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Cashier, error)
	Create(ctx context.Context, cashier *model.Cashier) error
}

// TokenRepositoryInterface persists refresh tokens and the access-token
// blacklist.
type TokenRepositoryInterface interface {
	Create(ctx context.Context, token *model.Token) error
	Find(ctx context.Context, tokenString string) (*model.Token, error)
	Delete(ctx context.Context, tokenString string) error
	DeleteByCashier(ctx context.Context, cashierID primitive.ObjectID) error
	IsBlacklisted(ctx context.Context, tokenString string) (bool, error)
}

// AuditRepositoryInterface persists audit log entries.
type AuditRepositoryInterface interface {
	Create(ctx context.Context, entry *model.AuditEntry) error
	Query(ctx context.Context, opts model.AuditQueryOptions) ([]model.AuditEntry, error)
}
