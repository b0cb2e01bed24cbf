package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/guttosm/pos-checkout-service/internal/domain/model"
)

// TokenRepository persists refresh tokens and the access-token
// blacklist. Expired documents are removed by the TTL index.
type TokenRepository struct {
	tokens *mongo.Collection
}

// NewTokenRepository creates a token repository.
func NewTokenRepository(db *MongoDB) *TokenRepository {
	return &TokenRepository{tokens: db.Tokens}
}

// Create inserts a new token document.
func (r *TokenRepository) Create(ctx context.Context, token *model.Token) error {
	token.CreatedAt = time.Now()
	if token.ID.IsZero() {
		token.ID = primitive.NewObjectID()
	}
	_, err := r.tokens.InsertOne(ctx, token)
	return err
}

// Find looks up a token by its string value. A miss is (nil, nil).
func (r *TokenRepository) Find(ctx context.Context, tokenString string) (*model.Token, error) {
	var token model.Token
	err := r.tokens.FindOne(ctx, bson.M{"token": tokenString}).Decode(&token)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// Delete removes a token by its string value.
func (r *TokenRepository) Delete(ctx context.Context, tokenString string) error {
	_, err := r.tokens.DeleteOne(ctx, bson.M{"token": tokenString})
	return err
}

// DeleteByCashier removes all refresh tokens for a cashier, forcing a
// fresh login everywhere.
func (r *TokenRepository) DeleteByCashier(ctx context.Context, cashierID primitive.ObjectID) error {
	_, err := r.tokens.DeleteMany(ctx, bson.M{
		"cashier_id": cashierID,
		"type":       model.TokenTypeRefresh,
	})
	return err
}

// IsBlacklisted reports whether an access token has been revoked.
func (r *TokenRepository) IsBlacklisted(ctx context.Context, tokenString string) (bool, error) {
	count, err := r.tokens.CountDocuments(ctx, bson.M{
		"token": tokenString,
		"type":  model.TokenTypeBlacklist,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
