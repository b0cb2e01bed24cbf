package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/guttosm/pos-checkout-service/internal/domain/model"
)

// priceListDocument is the MongoDB shape of a per-item UOM price list.
// customer_id is empty for the standard selling list.
type priceListDocument struct {
	ItemCode   string `bson:"item_code"`
	CustomerID string `bson:"customer_id,omitempty"`
	BaseUOM    string `bson:"base_uom"`
	UOMs       []struct {
		UOM              string  `bson:"uom"`
		ConversionFactor float64 `bson:"conversion_factor"`
		Price            float64 `bson:"price"`
	} `bson:"uoms"`
}

func (d priceListDocument) toModel() *model.UOMPriceList {
	list := &model.UOMPriceList{
		ItemCode: d.ItemCode,
		BaseUOM:  d.BaseUOM,
		UOMs:     make([]model.UOMPrice, len(d.UOMs)),
	}
	for i, u := range d.UOMs {
		list.UOMs[i] = model.UOMPrice{
			UOM:              u.UOM,
			ConversionFactor: u.ConversionFactor,
			Price:            u.Price,
		}
	}
	return list
}

// PriceRepository reads per-UOM price lists for items.
type PriceRepository struct {
	prices *mongo.Collection
}

// NewPriceRepository creates a price repository.
func NewPriceRepository(db *MongoDB) *PriceRepository {
	return &PriceRepository{prices: db.Prices}
}

// GetUOMPrices returns the UOM price list for an item. A customer-specific
// list takes precedence; when none exists the standard list is returned.
// A miss on both is (nil, nil).
func (r *PriceRepository) GetUOMPrices(ctx context.Context, itemCode, customerID string) (*model.UOMPriceList, error) {
	if customerID != "" {
		list, err := r.findList(ctx, bson.M{"item_code": itemCode, "customer_id": customerID})
		if err != nil {
			return nil, err
		}
		if list != nil {
			return list, nil
		}
	}
	return r.findList(ctx, bson.M{
		"item_code": itemCode,
		"$or": []bson.M{
			{"customer_id": ""},
			{"customer_id": bson.M{"$exists": false}},
		},
	})
}

func (r *PriceRepository) findList(ctx context.Context, filter bson.M) (*model.UOMPriceList, error) {
	var doc priceListDocument
	err := r.prices.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.toModel(), nil
}
