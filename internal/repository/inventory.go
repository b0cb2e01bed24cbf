package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/pos-checkout-service/internal/domain/model"
)

// InventoryRepository reads batch and serial options for items.
type InventoryRepository struct {
	batches *mongo.Collection
	serials *mongo.Collection
}

// NewInventoryRepository creates an inventory repository.
func NewInventoryRepository(db *MongoDB) *InventoryRepository {
	return &InventoryRepository{
		batches: db.Batches,
		serials: db.Serials,
	}
}

// GetBatches returns the selectable batches for an item with their
// available quantities, newest first.
func (r *InventoryRepository) GetBatches(ctx context.Context, itemCode string) ([]model.BatchOption, error) {
	opts := options.Find().SetSort(bson.M{"batch_id": 1})
	cursor, err := r.batches.Find(ctx, bson.M{"item_code": itemCode, "qty": bson.M{"$gt": 0}}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []struct {
		BatchID string  `bson:"batch_id"`
		Qty     float64 `bson:"qty"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	batches := make([]model.BatchOption, len(docs))
	for i, d := range docs {
		batches[i] = model.BatchOption{BatchID: d.BatchID, Qty: d.Qty}
	}
	return batches, nil
}

// GetSerials returns the unsold serial numbers for an item.
func (r *InventoryRepository) GetSerials(ctx context.Context, itemCode string) ([]string, error) {
	opts := options.Find().SetSort(bson.M{"serial_no": 1})
	cursor, err := r.serials.Find(ctx, bson.M{"item_code": itemCode, "sold": bson.M{"$ne": true}}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []struct {
		SerialNo string `bson:"serial_no"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	serials := make([]string, len(docs))
	for i, d := range docs {
		serials[i] = d.SerialNo
	}
	return serials, nil
}
