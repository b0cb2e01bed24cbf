package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/guttosm/pos-checkout-service/internal/domain/model"
)

// itemDocument is the MongoDB shape of a catalog item.
type itemDocument struct {
	ItemCode  string  `bson:"item_code"`
	ItemName  string  `bson:"item_name"`
	ItemGroup string  `bson:"item_group"`
	Price     float64 `bson:"price"`
	Available float64 `bson:"available"`
	StockUOM  string  `bson:"stock_uom"`
	Barcode   string  `bson:"barcode,omitempty"`
	Image     string  `bson:"image,omitempty"`
}

func (d itemDocument) toModel() model.CatalogItem {
	return model.CatalogItem{
		ItemCode:  d.ItemCode,
		ItemName:  d.ItemName,
		ItemGroup: d.ItemGroup,
		Price:     d.Price,
		Available: d.Available,
		StockUOM:  d.StockUOM,
		Barcode:   d.Barcode,
		Image:     d.Image,
	}
}

// CatalogRepository reads catalog items and resolves scanned codes.
type CatalogRepository struct {
	items   *mongo.Collection
	batches *mongo.Collection
	serials *mongo.Collection
}

// NewCatalogRepository creates a catalog repository.
func NewCatalogRepository(db *MongoDB) *CatalogRepository {
	return &CatalogRepository{
		items:   db.Items,
		batches: db.Batches,
		serials: db.Serials,
	}
}

// ListItems returns the full catalog for the in-memory snapshot.
func (r *CatalogRepository) ListItems(ctx context.Context) ([]model.CatalogItem, error) {
	cursor, err := r.items.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []itemDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	items := make([]model.CatalogItem, len(docs))
	for i, d := range docs {
		items[i] = d.toModel()
	}
	return items, nil
}

// ListGroups returns the distinct item groups.
func (r *CatalogRepository) ListGroups(ctx context.Context) ([]string, error) {
	values, err := r.items.Distinct(ctx, "item_group", bson.M{})
	if err != nil {
		return nil, err
	}

	groups := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			groups = append(groups, s)
		}
	}
	return groups, nil
}

// LookupByCode resolves a scanned or typed code. Resolution order:
// item code, item barcode, batch barcode, serial number. A batch or
// serial hit also reports the matched value so the cart line can be
// preselected. A miss returns (nil, nil).
func (r *CatalogRepository) LookupByCode(ctx context.Context, code string) (*model.LookupResult, error) {
	item, err := r.findItem(ctx, bson.M{"$or": []bson.M{
		{"item_code": code},
		{"barcode": code},
	}})
	if err != nil {
		return nil, err
	}
	if item != nil {
		return &model.LookupResult{Item: *item, MatchedType: model.MatchItem}, nil
	}

	// Batch barcode
	var batch struct {
		ItemCode string `bson:"item_code"`
		BatchID  string `bson:"batch_id"`
	}
	err = r.batches.FindOne(ctx, bson.M{"barcode": code}).Decode(&batch)
	switch err {
	case nil:
		item, err := r.findItem(ctx, bson.M{"item_code": batch.ItemCode})
		if err != nil || item == nil {
			return nil, err
		}
		return &model.LookupResult{
			Item:         *item,
			MatchedType:  model.MatchBatch,
			MatchedValue: batch.BatchID,
		}, nil
	case mongo.ErrNoDocuments:
	default:
		return nil, err
	}

	// Serial number
	var serial struct {
		ItemCode string `bson:"item_code"`
		SerialNo string `bson:"serial_no"`
	}
	err = r.serials.FindOne(ctx, bson.M{"serial_no": code}).Decode(&serial)
	switch err {
	case nil:
		item, err := r.findItem(ctx, bson.M{"item_code": serial.ItemCode})
		if err != nil || item == nil {
			return nil, err
		}
		return &model.LookupResult{
			Item:         *item,
			MatchedType:  model.MatchSerial,
			MatchedValue: serial.SerialNo,
		}, nil
	case mongo.ErrNoDocuments:
		return nil, nil
	default:
		return nil, err
	}
}

func (r *CatalogRepository) findItem(ctx context.Context, filter bson.M) (*model.CatalogItem, error) {
	var doc itemDocument
	err := r.items.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	item := doc.toModel()
	return &item, nil
}
