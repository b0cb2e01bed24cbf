package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/guttosm/pos-checkout-service/internal/domain/model"
)

// CouponRepository reads gift coupons.
type CouponRepository struct {
	coupons *mongo.Collection
}

// NewCouponRepository creates a coupon repository.
func NewCouponRepository(db *MongoDB) *CouponRepository {
	return &CouponRepository{coupons: db.Coupons}
}

// FindByCode looks up an active coupon by its code. A miss or an
// inactive coupon returns (nil, nil).
func (r *CouponRepository) FindByCode(ctx context.Context, code string) (*model.Coupon, error) {
	var doc struct {
		Code        string  `bson:"code"`
		Value       float64 `bson:"value"`
		Description string  `bson:"description,omitempty"`
		Active      bool    `bson:"active"`
	}
	err := r.coupons.FindOne(ctx, bson.M{"code": code}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !doc.Active {
		return nil, nil
	}
	return &model.Coupon{
		Code:        doc.Code,
		Value:       doc.Value,
		Description: doc.Description,
	}, nil
}
