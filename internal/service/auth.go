package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/guttosm/pos-checkout-service/config"
	"github.com/guttosm/pos-checkout-service/internal/domain/dto"
	"github.com/guttosm/pos-checkout-service/internal/domain/model"
	"github.com/guttosm/pos-checkout-service/internal/repository"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken is returned when a token is invalid or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrTokenBlacklisted is returned when a token has been revoked.
	ErrTokenBlacklisted = errors.New("token is blacklisted")
)

// ClaimsWithJWT extends dto.Claims with JWT RegisteredClaims for token generation.
type ClaimsWithJWT struct {
	dto.Claims
	jwt.RegisteredClaims
}

// AuthService provides cashier authentication operations.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*dto.TokenPair, *model.Cashier, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPair, error)
	ValidateToken(ctx context.Context, tokenString string) (*dto.Claims, error)
	Logout(ctx context.Context, accessToken, refreshToken string) error
}

// AuthServiceImpl implements AuthService with HMAC-signed JWTs. Refresh
// tokens are persisted; revoked access tokens go to a blacklist that
// expires with the token itself.
type AuthServiceImpl struct {
	cashierRepo      repository.CashierRepositoryInterface
	tokenRepo        repository.TokenRepositoryInterface
	secretKey        []byte
	refreshSecretKey []byte
	accessTokenTTL   time.Duration
	refreshTokenTTL  time.Duration
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	cashierRepo repository.CashierRepositoryInterface,
	tokenRepo repository.TokenRepositoryInterface,
	authConfig config.AuthConfig,
) AuthService {
	return &AuthServiceImpl{
		cashierRepo:      cashierRepo,
		tokenRepo:        tokenRepo,
		secretKey:        []byte(authConfig.JWTSecretKey),
		refreshSecretKey: []byte(authConfig.JWTRefreshSecret),
		accessTokenTTL:   authConfig.AccessTokenTTL,
		refreshTokenTTL:  authConfig.RefreshTokenTTL,
	}
}

// Login authenticates a cashier and returns a fresh token pair. Any
// previous refresh tokens for the cashier are invalidated first.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*dto.TokenPair, *model.Cashier, error) {
	cashier, err := s.cashierRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find cashier by email: %w", err)
	}
	if cashier == nil || !cashier.Active {
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cashier.Password), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if err := s.tokenRepo.DeleteByCashier(ctx, cashier.ID); err != nil {
		return nil, nil, fmt.Errorf("failed to invalidate existing tokens: %w", err)
	}

	pair, err := s.generateTokenPair(ctx, cashier)
	if err != nil {
		return nil, nil, err
	}
	return pair, cashier, nil
}

// RefreshToken rotates a refresh token into a new token pair.
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	claims, err := s.parseToken(refreshToken, s.refreshSecretKey)
	if err != nil {
		return nil, err
	}

	stored, err := s.tokenRepo.Find(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if stored == nil || stored.Type != model.TokenTypeRefresh || time.Now().After(stored.ExpiresAt) {
		return nil, ErrInvalidToken
	}

	cashier, err := s.cashierRepo.FindByID(ctx, claims.CashierID)
	if err != nil {
		return nil, err
	}
	if cashier == nil || !cashier.Active {
		return nil, ErrInvalidCredentials
	}

	// Rotate: the old refresh token is single use.
	if err := s.tokenRepo.Delete(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to delete old refresh token: %w", err)
	}
	return s.generateTokenPair(ctx, cashier)
}

// ValidateToken validates an access token and returns its claims.
func (s *AuthServiceImpl) ValidateToken(ctx context.Context, tokenString string) (*dto.Claims, error) {
	blacklisted, err := s.tokenRepo.IsBlacklisted(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		return nil, ErrTokenBlacklisted
	}
	return s.parseToken(tokenString, s.secretKey)
}

// Logout blacklists the access token and deletes the refresh token.
func (s *AuthServiceImpl) Logout(ctx context.Context, accessToken, refreshToken string) error {
	var errs []error

	if accessToken != "" {
		if err := s.blacklistAccessToken(ctx, accessToken); err != nil {
			log.Warn().Err(err).Msg("failed to invalidate access token during logout")
			errs = append(errs, fmt.Errorf("invalidate access token: %w", err))
		}
	}

	if refreshToken != "" {
		if err := s.tokenRepo.Delete(ctx, refreshToken); err != nil {
			log.Warn().Err(err).Msg("failed to delete refresh token during logout")
			errs = append(errs, fmt.Errorf("delete refresh token: %w", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func (s *AuthServiceImpl) generateTokenPair(ctx context.Context, cashier *model.Cashier) (*dto.TokenPair, error) {
	if cashier.ID.IsZero() {
		return nil, errors.New("cashier ID is zero, cannot create token")
	}

	accessToken, _, err := s.signToken(cashier, s.secretKey, s.accessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := s.signToken(cashier, s.refreshSecretKey, s.refreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	stored := &model.Token{
		CashierID: cashier.ID,
		Token:     refreshToken,
		Type:      model.TokenTypeRefresh,
		ExpiresAt: refreshExpiresAt,
	}
	if err := s.tokenRepo.Create(ctx, stored); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessTokenTTL.Seconds()),
	}, nil
}

func (s *AuthServiceImpl) signToken(cashier *model.Cashier, key []byte, ttl time.Duration) (string, time.Time, error) {
	expirationTime := time.Now().Add(ttl)

	claims := &ClaimsWithJWT{
		Claims: dto.Claims{
			CashierID: cashier.ID,
			Email:     cashier.Email,
			Name:      cashier.Name,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expirationTime, nil
}

func (s *AuthServiceImpl) parseToken(tokenString string, key []byte) (*dto.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ClaimsWithJWT{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return key, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claimsWithJWT, ok := token.Claims.(*ClaimsWithJWT); ok && token.Valid {
		return &claimsWithJWT.Claims, nil
	}
	return nil, ErrInvalidToken
}

func (s *AuthServiceImpl) blacklistAccessToken(ctx context.Context, tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &ClaimsWithJWT{}, func(token *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	})
	if err != nil {
		return err
	}

	claimsWithJWT, ok := token.Claims.(*ClaimsWithJWT)
	if !ok {
		return ErrInvalidToken
	}

	expiresAt := time.Now().Add(s.accessTokenTTL)
	if claimsWithJWT.ExpiresAt != nil {
		expiresAt = claimsWithJWT.ExpiresAt.Time
	}

	return s.tokenRepo.Create(ctx, &model.Token{
		CashierID: claimsWithJWT.CashierID,
		Token:     tokenString,
		Type:      model.TokenTypeBlacklist,
		ExpiresAt: expiresAt,
	})
}
