package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/guttosm/pos-checkout-service/internal/domain/model"
)

// CashierRepository manages cashier accounts.
type CashierRepository struct {
	cashiers *mongo.Collection
}

// NewCashierRepository creates a cashier repository.
func NewCashierRepository(db *MongoDB) *CashierRepository {
	return &CashierRepository{cashiers: db.Cashiers}
}

// FindByEmail finds a cashier by email. A miss is (nil, nil).
func (r *CashierRepository) FindByEmail(ctx context.Context, email string) (*model.Cashier, error) {
	var cashier model.Cashier
	err := r.cashiers.FindOne(ctx, bson.M{"email": email}).Decode(&cashier)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cashier, nil
}

// FindByID finds a cashier by ID. A miss is (nil, nil).
func (r *CashierRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Cashier, error) {
	var cashier model.Cashier
	err := r.cashiers.FindOne(ctx, bson.M{"_id": id}).Decode(&cashier)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cashier, nil
}

// Create inserts a new cashier account.
func (r *CashierRepository) Create(ctx context.Context, cashier *model.Cashier) error {
	now := time.Now()
	cashier.CreatedAt = now
	cashier.UpdatedAt = now
	if cashier.ID.IsZero() {
		cashier.ID = primitive.NewObjectID()
	}
	_, err := r.cashiers.InsertOne(ctx, cashier)
	return err
}
