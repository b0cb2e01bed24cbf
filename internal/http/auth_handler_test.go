package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/pos-checkout-service/internal/domain/dto"
	"github.com/guttosm/pos-checkout-service/internal/domain/model"
	"github.com/guttosm/pos-checkout-service/internal/service"
)

func newAuthRouter(authService *MockAuthService, audit service.AuditService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := NewAuthHandler(authService, audit)
	api := router.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/login", handler.Login)
	auth.POST("/refresh", handler.RefreshToken)
	auth.POST("/logout", handler.Logout)
	return router
}

func TestAuthHandler_Login(t *testing.T) {
	cashier := &model.Cashier{
		ID:     primitive.NewObjectID(),
		Email:  "cashier@example.com",
		Name:   "Ana Torres",
		Active: true,
	}
	pair := &dto.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token", ExpiresIn: 900}

	tests := []struct {
		name           string
		body           string
		setup          func(auth *MockAuthService)
		expectedStatus int
	}{
		{
			name: "valid credentials",
			body: `{"email": "cashier@example.com", "password": "secret123"}`,
			setup: func(auth *MockAuthService) {
				auth.On("Login", mock.Anything, "cashier@example.com", "secret123").Return(pair, cashier, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "wrong password",
			body: `{"email": "cashier@example.com", "password": "wrongpass"}`,
			setup: func(auth *MockAuthService) {
				auth.On("Login", mock.Anything, "cashier@example.com", "wrongpass").Return(nil, nil, service.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing password",
			body:           `{"email": "cashier@example.com"}`,
			setup:          func(auth *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed body",
			body:           `{`,
			setup:          func(auth *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authService := new(MockAuthService)
			tt.setup(authService)

			router := newAuthRouter(authService, nil)
			w := doJSON(t, router, http.MethodPost, "/api/auth/login", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				data := decodeData(t, w)
				assert.Equal(t, "access-token", data["token"])
				assert.Equal(t, "refresh-token", data["refresh_token"])
				cashierData, ok := data["cashier"].(map[string]interface{})
				require.True(t, ok)
				assert.Equal(t, "cashier@example.com", cashierData["email"])
				assert.Equal(t, "Ana Torres", cashierData["name"])
			}
			authService.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_LoginAuditsFailedAttempt(t *testing.T) {
	authService := new(MockAuthService)
	authService.On("Login", mock.Anything, "cashier@example.com", "wrongpass").Return(nil, nil, service.ErrInvalidCredentials)

	audit := new(MockAuditService)
	audit.On("Record", mock.MatchedBy(func(e *model.AuditEntry) bool {
		return e.ActionType == "login_failed" && e.Level == "error" && e.Fields["email"] == "cashier@example.com"
	})).Return()

	router := newAuthRouter(authService, audit)
	w := doJSON(t, router, http.MethodPost, "/api/auth/login", `{"email": "cashier@example.com", "password": "wrongpass"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	audit.AssertExpectations(t)
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	pair := &dto.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh", ExpiresIn: 900}

	tests := []struct {
		name           string
		refreshHeader  string
		setup          func(auth *MockAuthService)
		expectedStatus int
	}{
		{
			name:          "valid refresh token",
			refreshHeader: "old-refresh",
			setup: func(auth *MockAuthService) {
				auth.On("RefreshToken", mock.Anything, "old-refresh").Return(pair, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:          "invalid refresh token",
			refreshHeader: "bogus",
			setup: func(auth *MockAuthService) {
				auth.On("RefreshToken", mock.Anything, "bogus").Return(nil, service.ErrInvalidToken)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:          "deactivated cashier",
			refreshHeader: "orphan",
			setup: func(auth *MockAuthService) {
				auth.On("RefreshToken", mock.Anything, "orphan").Return(nil, service.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing header",
			refreshHeader:  "",
			setup:          func(auth *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authService := new(MockAuthService)
			tt.setup(authService)

			router := newAuthRouter(authService, nil)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", strings.NewReader(""))
			if tt.refreshHeader != "" {
				req.Header.Set("X-Refresh-Token", tt.refreshHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				data := decodeData(t, w)
				assert.Equal(t, "new-access", data["token"])
				assert.Equal(t, "new-refresh", data["refresh_token"])
			}
			authService.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		refreshHeader  string
		setup          func(auth *MockAuthService)
		expectedStatus int
	}{
		{
			name:          "logs out",
			authHeader:    "Bearer access-token",
			refreshHeader: "refresh-token",
			setup: func(auth *MockAuthService) {
				auth.On("Logout", mock.Anything, "access-token", "refresh-token").Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing authorization header",
			authHeader:     "",
			refreshHeader:  "refresh-token",
			setup:          func(auth *MockAuthService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "malformed authorization header",
			authHeader:     "Token access-token",
			refreshHeader:  "refresh-token",
			setup:          func(auth *MockAuthService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing refresh token header",
			authHeader:     "Bearer access-token",
			refreshHeader:  "",
			setup:          func(auth *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authService := new(MockAuthService)
			tt.setup(authService)

			router := newAuthRouter(authService, nil)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", strings.NewReader(""))
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			if tt.refreshHeader != "" {
				req.Header.Set("X-Refresh-Token", tt.refreshHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			authService.AssertExpectations(t)
		})
	}
}
