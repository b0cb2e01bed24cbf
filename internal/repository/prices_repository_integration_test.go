//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestPriceRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	_, err := db.Prices.InsertMany(ctx, []interface{}{
		bson.M{
			"item_code": "1000042",
			"base_uom":  "Unit",
			"uoms": []bson.M{
				{"uom": "Unit", "conversion_factor": 1.0, "price": 12.50},
				{"uom": "Box", "conversion_factor": 12.0, "price": 135.00},
			},
		},
		bson.M{
			"item_code":   "1000042",
			"customer_id": "CUST-7",
			"base_uom":    "Unit",
			"uoms": []bson.M{
				{"uom": "Unit", "conversion_factor": 1.0, "price": 11.00},
				{"uom": "Box", "conversion_factor": 12.0, "price": 120.00},
			},
		},
	})
	require.NoError(t, err)

	repo := NewPriceRepository(db)

	t.Run("standard list when no customer", func(t *testing.T) {
		list, err := repo.GetUOMPrices(ctx, "1000042", "")
		require.NoError(t, err)
		require.NotNil(t, list)
		require.Len(t, list.UOMs, 2)
		assert.Equal(t, 12.50, list.UOMs[0].Price)
	})

	t.Run("customer list takes precedence", func(t *testing.T) {
		list, err := repo.GetUOMPrices(ctx, "1000042", "CUST-7")
		require.NoError(t, err)
		require.NotNil(t, list)
		assert.Equal(t, 11.00, list.UOMs[0].Price)
	})

	t.Run("unknown customer falls back to standard", func(t *testing.T) {
		list, err := repo.GetUOMPrices(ctx, "1000042", "CUST-999")
		require.NoError(t, err)
		require.NotNil(t, list)
		assert.Equal(t, 12.50, list.UOMs[0].Price)
	})

	t.Run("unknown item is a miss", func(t *testing.T) {
		list, err := repo.GetUOMPrices(ctx, "no-such-item", "")
		assert.NoError(t, err)
		assert.Nil(t, list)
	})
}

func TestCouponRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	_, err := db.Coupons.InsertMany(ctx, []interface{}{
		bson.M{"code": "GIFT-50", "value": 50.0, "description": "Gift card 50", "active": true},
		bson.M{"code": "EXPIRED-10", "value": 10.0, "active": false},
	})
	require.NoError(t, err)

	repo := NewCouponRepository(db)

	t.Run("active coupon", func(t *testing.T) {
		coupon, err := repo.FindByCode(ctx, "GIFT-50")
		require.NoError(t, err)
		require.NotNil(t, coupon)
		assert.Equal(t, 50.0, coupon.Value)
	})

	t.Run("inactive coupon is a miss", func(t *testing.T) {
		coupon, err := repo.FindByCode(ctx, "EXPIRED-10")
		assert.NoError(t, err)
		assert.Nil(t, coupon)
	})

	t.Run("unknown coupon is a miss", func(t *testing.T) {
		coupon, err := repo.FindByCode(ctx, "NOPE")
		assert.NoError(t, err)
		assert.Nil(t, coupon)
	})
}
