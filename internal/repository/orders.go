package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/guttosm/pos-checkout-service/internal/domain/model"
)

// DraftLine is a cart line frozen into a held order, with its discounts
// and batch/serial selections flattened in.
type DraftLine struct {
	ItemCode        string  `bson:"item_code" json:"item_code"`
	ItemName        string  `bson:"item_name" json:"item_name"`
	Price           float64 `bson:"price" json:"price"`
	EffectivePrice  float64 `bson:"effective_price" json:"effective_price"`
	Quantity        float64 `bson:"quantity" json:"quantity"`
	UOM             string  `bson:"uom" json:"uom"`
	Total           float64 `bson:"total" json:"total"`
	DiscountPercent float64 `bson:"discount_percent,omitempty" json:"discount_percent,omitempty"`
	DiscountAmount  float64 `bson:"discount_amount,omitempty" json:"discount_amount,omitempty"`
	BatchNo         string  `bson:"batch_no,omitempty" json:"batch_no,omitempty"`
	SerialNo        string  `bson:"serial_no,omitempty" json:"serial_no,omitempty"`
}

// DraftOrder is a held cart persisted so the register can be freed for
// the next customer. Held orders are resumed or invoiced elsewhere.
type DraftOrder struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID      string             `bson:"session_id" json:"session_id"`
	CashierID      string             `bson:"cashier_id,omitempty" json:"cashier_id,omitempty"`
	CustomerID     string             `bson:"customer_id,omitempty" json:"customer_id,omitempty"`
	Lines          []DraftLine        `bson:"lines" json:"lines"`
	Coupons        []model.Coupon     `bson:"coupons,omitempty" json:"coupons,omitempty"`
	Subtotal       float64            `bson:"subtotal" json:"subtotal"`
	CouponDiscount float64            `bson:"coupon_discount" json:"coupon_discount"`
	Total          float64            `bson:"total" json:"total"`
	Status         string             `bson:"status" json:"status"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}

// Draft order status.
const OrderStatusDraft = "draft"

// NewDraftOrder freezes an order projection into a draft document.
func NewDraftOrder(sessionID, cashierID, customerID string, projection model.OrderProjection) *DraftOrder {
	order := &DraftOrder{
		SessionID:      sessionID,
		CashierID:      cashierID,
		CustomerID:     customerID,
		Lines:          make([]DraftLine, len(projection.Lines)),
		Coupons:        projection.Coupons,
		Subtotal:       projection.Subtotal,
		CouponDiscount: projection.CouponDiscount,
		Total:          projection.Total,
		Status:         OrderStatusDraft,
	}
	for i, line := range projection.Lines {
		order.Lines[i] = DraftLine{
			ItemCode:        line.ItemCode,
			ItemName:        line.ItemName,
			Price:           line.Price,
			EffectivePrice:  line.EffectivePrice,
			Quantity:        line.Quantity,
			UOM:             line.UOM,
			Total:           line.Total,
			DiscountPercent: line.Options.DiscountPercent,
			DiscountAmount:  line.Options.DiscountAmount,
			BatchNo:         line.Options.BatchNo,
			SerialNo:        line.Options.SerialNo,
		}
	}
	return order
}

// OrderRepository persists held orders.
type OrderRepository struct {
	orders *mongo.Collection
}

// NewOrderRepository creates an order repository.
func NewOrderRepository(db *MongoDB) *OrderRepository {
	return &OrderRepository{orders: db.Orders}
}

// CreateDraft inserts a held order and returns it with its assigned ID.
func (r *OrderRepository) CreateDraft(ctx context.Context, order *DraftOrder) (*DraftOrder, error) {
	order.CreatedAt = time.Now()
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if _, err := r.orders.InsertOne(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}
