// Package repository provides the MongoDB data access layer.
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig holds MongoDB connection pool configuration.
type MongoConfig struct {
	MaxPoolSize            uint64
	MinPoolSize            uint64
	MaxConnIdleTime        time.Duration
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
	SocketTimeout          time.Duration
	EnableCompression      bool
}

// DefaultMongoConfig returns production-oriented connection settings.
func DefaultMongoConfig() MongoConfig {
	return MongoConfig{
		MaxPoolSize:            50,
		MinPoolSize:            10,
		MaxConnIdleTime:        10 * time.Minute,
		ConnectTimeout:         10 * time.Second,
		ServerSelectionTimeout: 5 * time.Second,
		SocketTimeout:          30 * time.Second,
		EnableCompression:      true,
	}
}

// MongoDB provides client and collection handles for the POS database.
type MongoDB struct {
	Client    *mongo.Client
	Database  *mongo.Database
	Items     *mongo.Collection
	Batches   *mongo.Collection
	Serials   *mongo.Collection
	Prices    *mongo.Collection
	Coupons   *mongo.Collection
	Orders    *mongo.Collection
	Cashiers  *mongo.Collection
	Tokens    *mongo.Collection
	AuditLogs *mongo.Collection
}

// NewMongoDB connects with default configuration.
func NewMongoDB(uri, databaseName string) (*MongoDB, error) {
	return NewMongoDBWithConfig(uri, databaseName, DefaultMongoConfig())
}

// NewMongoDBWithConfig connects with custom configuration and prepares
// the indexes the lookup paths depend on.
func NewMongoDBWithConfig(uri, databaseName string, cfg MongoConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetSocketTimeout(cfg.SocketTimeout).
		SetRetryWrites(true).
		SetRetryReads(true)

	if cfg.EnableCompression {
		clientOptions.SetCompressors([]string{"zstd", "snappy", "zlib"})
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(databaseName)
	m := &MongoDB{
		Client:    client,
		Database:  db,
		Items:     db.Collection("items"),
		Batches:   db.Collection("batches"),
		Serials:   db.Collection("serials"),
		Prices:    db.Collection("item_prices"),
		Coupons:   db.Collection("coupons"),
		Orders:    db.Collection("orders"),
		Cashiers:  db.Collection("cashiers"),
		Tokens:    db.Collection("tokens"),
		AuditLogs: db.Collection("audit_logs"),
	}

	if err := m.createIndexes(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// createIndexes builds the indexes used by scan-time lookups. Errors
// for indexes that already exist are ignored.
func (m *MongoDB) createIndexes(ctx context.Context) error {
	itemCodeIndex := mongo.IndexModel{
		Keys:    map[string]interface{}{"item_code": 1},
		Options: options.Index().SetUnique(true),
	}
	if _, err := m.Items.Indexes().CreateOne(ctx, itemCodeIndex); err != nil {
		return err
	}

	itemBarcodeIndex := mongo.IndexModel{
		Keys:    map[string]interface{}{"barcode": 1},
		Options: options.Index().SetSparse(true),
	}
	_, _ = m.Items.Indexes().CreateOne(ctx, itemBarcodeIndex)

	batchIndex := mongo.IndexModel{
		Keys: map[string]interface{}{"item_code": 1, "batch_id": 1},
	}
	_, _ = m.Batches.Indexes().CreateOne(ctx, batchIndex)

	batchBarcodeIndex := mongo.IndexModel{
		Keys:    map[string]interface{}{"barcode": 1},
		Options: options.Index().SetSparse(true),
	}
	_, _ = m.Batches.Indexes().CreateOne(ctx, batchBarcodeIndex)

	serialIndex := mongo.IndexModel{
		Keys:    map[string]interface{}{"serial_no": 1},
		Options: options.Index().SetUnique(true),
	}
	_, _ = m.Serials.Indexes().CreateOne(ctx, serialIndex)

	priceIndex := mongo.IndexModel{
		Keys: map[string]interface{}{"item_code": 1, "customer_id": 1},
	}
	_, _ = m.Prices.Indexes().CreateOne(ctx, priceIndex)

	couponCodeIndex := mongo.IndexModel{
		Keys:    map[string]interface{}{"code": 1},
		Options: options.Index().SetUnique(true),
	}
	_, _ = m.Coupons.Indexes().CreateOne(ctx, couponCodeIndex)

	cashierEmailIndex := mongo.IndexModel{
		Keys:    map[string]interface{}{"email": 1},
		Options: options.Index().SetUnique(true),
	}
	_, _ = m.Cashiers.Indexes().CreateOne(ctx, cashierEmailIndex)

	tokenIndex := mongo.IndexModel{
		Keys:    map[string]interface{}{"token": 1},
		Options: options.Index().SetUnique(true),
	}
	_, _ = m.Tokens.Indexes().CreateOne(ctx, tokenIndex)

	tokenTTLIndex := mongo.IndexModel{
		Keys:    map[string]interface{}{"expires_at": 1},
		Options: options.Index().SetExpireAfterSeconds(0),
	}
	_, _ = m.Tokens.Indexes().CreateOne(ctx, tokenTTLIndex)

	auditRequestIndex := mongo.IndexModel{
		Keys: map[string]interface{}{"request_id": 1},
	}
	_, _ = m.AuditLogs.Indexes().CreateOne(ctx, auditRequestIndex)

	return nil
}

// SetAuditTTL sets the TTL index on the audit logs collection.
func (m *MongoDB) SetAuditTTL(ctx context.Context, ttlDays int) error {
	_, _ = m.AuditLogs.Indexes().DropOne(ctx, "timestamp_1")

	ttlSeconds := int32(ttlDays * 24 * 60 * 60)
	ttlIndex := mongo.IndexModel{
		Keys:    map[string]interface{}{"timestamp": 1},
		Options: options.Index().SetExpireAfterSeconds(ttlSeconds),
	}
	_, err := m.AuditLogs.Indexes().CreateOne(ctx, ttlIndex)
	return err
}

// Close closes the MongoDB connection.
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// HealthCheck verifies the MongoDB connection is healthy.
func (m *MongoDB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return m.Client.Ping(ctx, nil)
}
