package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/guttosm/pos-checkout-service/config"
	"github.com/guttosm/pos-checkout-service/internal/domain/model"
	"github.com/guttosm/pos-checkout-service/internal/mocks"
)

func authFixture(t *testing.T) (*mocks.MockCashierRepositoryInterface, *mocks.MockTokenRepositoryInterface, AuthService, *model.Cashier) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	cashier := &model.Cashier{
		ID:       primitive.NewObjectID(),
		Email:    "ana@example.com",
		Name:     "Ana Torres",
		Password: string(hash),
		Active:   true,
	}

	cashierRepo := new(mocks.MockCashierRepositoryInterface)
	tokenRepo := new(mocks.MockTokenRepositoryInterface)
	svc := NewAuthService(cashierRepo, tokenRepo, config.AuthConfig{
		JWTSecretKey:     "test-secret",
		JWTRefreshSecret: "test-refresh-secret",
		AccessTokenTTL:   15 * time.Minute,
		RefreshTokenTTL:  24 * time.Hour,
	})

	return cashierRepo, tokenRepo, svc, cashier
}

func TestAuthService_Login(t *testing.T) {
	t.Run("returns token pair and invalidates old refresh tokens", func(t *testing.T) {
		cashierRepo, tokenRepo, svc, cashier := authFixture(t)

		cashierRepo.On("FindByEmail", mock.Anything, "ana@example.com").Return(cashier, nil)
		tokenRepo.On("DeleteByCashier", mock.Anything, cashier.ID).Return(nil)
		tokenRepo.On("Create", mock.Anything, mock.MatchedBy(func(tok *model.Token) bool {
			return tok.Type == model.TokenTypeRefresh && tok.CashierID == cashier.ID
		})).Return(nil)

		pair, got, err := svc.Login(context.Background(), "ana@example.com", "secret123")

		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
		assert.Equal(t, int64(900), pair.ExpiresIn)
		assert.Equal(t, cashier.Email, got.Email)
		tokenRepo.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		cashierRepo, _, svc, cashier := authFixture(t)
		cashierRepo.On("FindByEmail", mock.Anything, "ana@example.com").Return(cashier, nil)

		_, _, err := svc.Login(context.Background(), "ana@example.com", "nope")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		cashierRepo, _, svc, _ := authFixture(t)
		cashierRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

		_, _, err := svc.Login(context.Background(), "ghost@example.com", "secret123")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive cashier is rejected", func(t *testing.T) {
		cashierRepo, _, svc, cashier := authFixture(t)
		cashier.Active = false
		cashierRepo.On("FindByEmail", mock.Anything, "ana@example.com").Return(cashier, nil)

		_, _, err := svc.Login(context.Background(), "ana@example.com", "secret123")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_ValidateToken(t *testing.T) {
	t.Run("accepts its own access token", func(t *testing.T) {
		cashierRepo, tokenRepo, svc, cashier := authFixture(t)
		cashierRepo.On("FindByEmail", mock.Anything, cashier.Email).Return(cashier, nil)
		tokenRepo.On("DeleteByCashier", mock.Anything, cashier.ID).Return(nil)
		tokenRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		tokenRepo.On("IsBlacklisted", mock.Anything, mock.Anything).Return(false, nil)

		pair, _, err := svc.Login(context.Background(), cashier.Email, "secret123")
		require.NoError(t, err)

		claims, err := svc.ValidateToken(context.Background(), pair.AccessToken)

		require.NoError(t, err)
		assert.Equal(t, cashier.ID, claims.CashierID)
		assert.Equal(t, cashier.Email, claims.Email)
		assert.Equal(t, cashier.Name, claims.Name)
	})

	t.Run("rejects blacklisted token", func(t *testing.T) {
		_, tokenRepo, svc, _ := authFixture(t)
		tokenRepo.On("IsBlacklisted", mock.Anything, "revoked").Return(true, nil)

		_, err := svc.ValidateToken(context.Background(), "revoked")

		assert.ErrorIs(t, err, ErrTokenBlacklisted)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		_, tokenRepo, svc, _ := authFixture(t)
		tokenRepo.On("IsBlacklisted", mock.Anything, "not-a-jwt").Return(false, nil)

		_, err := svc.ValidateToken(context.Background(), "not-a-jwt")

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects refresh token used as access token", func(t *testing.T) {
		cashierRepo, tokenRepo, svc, cashier := authFixture(t)
		cashierRepo.On("FindByEmail", mock.Anything, cashier.Email).Return(cashier, nil)
		tokenRepo.On("DeleteByCashier", mock.Anything, cashier.ID).Return(nil)
		tokenRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		tokenRepo.On("IsBlacklisted", mock.Anything, mock.Anything).Return(false, nil)

		pair, _, err := svc.Login(context.Background(), cashier.Email, "secret123")
		require.NoError(t, err)

		_, err = svc.ValidateToken(context.Background(), pair.RefreshToken)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	login := func(t *testing.T, cashierRepo *mocks.MockCashierRepositoryInterface, tokenRepo *mocks.MockTokenRepositoryInterface, svc AuthService, cashier *model.Cashier) string {
		t.Helper()
		cashierRepo.On("FindByEmail", mock.Anything, cashier.Email).Return(cashier, nil)
		tokenRepo.On("DeleteByCashier", mock.Anything, cashier.ID).Return(nil)
		tokenRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		pair, _, err := svc.Login(context.Background(), cashier.Email, "secret123")
		require.NoError(t, err)
		return pair.RefreshToken
	}

	t.Run("rotates a stored refresh token", func(t *testing.T) {
		cashierRepo, tokenRepo, svc, cashier := authFixture(t)
		refresh := login(t, cashierRepo, tokenRepo, svc, cashier)

		tokenRepo.On("Find", mock.Anything, refresh).Return(&model.Token{
			CashierID: cashier.ID,
			Token:     refresh,
			Type:      model.TokenTypeRefresh,
			ExpiresAt: time.Now().Add(time.Hour),
		}, nil)
		cashierRepo.On("FindByID", mock.Anything, cashier.ID).Return(cashier, nil)
		tokenRepo.On("Delete", mock.Anything, refresh).Return(nil)

		pair, err := svc.RefreshToken(context.Background(), refresh)

		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		tokenRepo.AssertCalled(t, "Delete", mock.Anything, refresh)
	})

	t.Run("rejects refresh token missing from the store", func(t *testing.T) {
		cashierRepo, tokenRepo, svc, cashier := authFixture(t)
		refresh := login(t, cashierRepo, tokenRepo, svc, cashier)

		tokenRepo.On("Find", mock.Anything, refresh).Return(nil, nil)

		_, err := svc.RefreshToken(context.Background(), refresh)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects expired stored token", func(t *testing.T) {
		cashierRepo, tokenRepo, svc, cashier := authFixture(t)
		refresh := login(t, cashierRepo, tokenRepo, svc, cashier)

		tokenRepo.On("Find", mock.Anything, refresh).Return(&model.Token{
			CashierID: cashier.ID,
			Token:     refresh,
			Type:      model.TokenTypeRefresh,
			ExpiresAt: time.Now().Add(-time.Minute),
		}, nil)

		_, err := svc.RefreshToken(context.Background(), refresh)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects deactivated cashier", func(t *testing.T) {
		cashierRepo, tokenRepo, svc, cashier := authFixture(t)
		refresh := login(t, cashierRepo, tokenRepo, svc, cashier)

		tokenRepo.On("Find", mock.Anything, refresh).Return(&model.Token{
			CashierID: cashier.ID,
			Token:     refresh,
			Type:      model.TokenTypeRefresh,
			ExpiresAt: time.Now().Add(time.Hour),
		}, nil)
		deactivated := *cashier
		deactivated.Active = false
		cashierRepo.On("FindByID", mock.Anything, cashier.ID).Return(&deactivated, nil)

		_, err := svc.RefreshToken(context.Background(), refresh)

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("rejects token signed with the access secret", func(t *testing.T) {
		cashierRepo, tokenRepo, svc, cashier := authFixture(t)
		cashierRepo.On("FindByEmail", mock.Anything, cashier.Email).Return(cashier, nil)
		tokenRepo.On("DeleteByCashier", mock.Anything, cashier.ID).Return(nil)
		tokenRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		pair, _, err := svc.Login(context.Background(), cashier.Email, "secret123")
		require.NoError(t, err)

		_, err = svc.RefreshToken(context.Background(), pair.AccessToken)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("blacklists access token and deletes refresh token", func(t *testing.T) {
		cashierRepo, tokenRepo, svc, cashier := authFixture(t)
		cashierRepo.On("FindByEmail", mock.Anything, cashier.Email).Return(cashier, nil)
		tokenRepo.On("DeleteByCashier", mock.Anything, cashier.ID).Return(nil)
		tokenRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		pair, _, err := svc.Login(context.Background(), cashier.Email, "secret123")
		require.NoError(t, err)

		tokenRepo.On("Delete", mock.Anything, pair.RefreshToken).Return(nil)

		err = svc.Logout(context.Background(), pair.AccessToken, pair.RefreshToken)

		require.NoError(t, err)
		tokenRepo.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(tok *model.Token) bool {
			return tok.Type == model.TokenTypeBlacklist && tok.Token == pair.AccessToken
		}))
		tokenRepo.AssertCalled(t, "Delete", mock.Anything, pair.RefreshToken)
	})

	t.Run("reports invalid access token but still deletes refresh token", func(t *testing.T) {
		_, tokenRepo, svc, _ := authFixture(t)
		tokenRepo.On("Delete", mock.Anything, "some-refresh").Return(nil)

		err := svc.Logout(context.Background(), "garbage", "some-refresh")

		assert.Error(t, err)
		tokenRepo.AssertCalled(t, "Delete", mock.Anything, "some-refresh")
	})
}
