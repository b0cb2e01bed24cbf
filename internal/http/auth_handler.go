package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pos-checkout-service/internal/domain/dto"
	"github.com/guttosm/pos-checkout-service/internal/i18n"
	"github.com/guttosm/pos-checkout-service/internal/middleware"
	"github.com/guttosm/pos-checkout-service/internal/service"
)

// AuthHandler provides HTTP handlers for cashier authentication routes.
type AuthHandler struct {
	authService service.AuthService
	audit       service.AuditService
}

// NewAuthHandler creates a new authentication handler.
func NewAuthHandler(authService service.AuthService, audit service.AuditService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		audit:       audit,
	}
}

// Login handles POST /api/auth/login requests.
//
// @Summary      Cashier login
// @Description  Authenticates a cashier and returns access and refresh tokens.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Login credentials"
// @Success      200 {object} dto.SuccessResponse{data=dto.LoginResponse}
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - invalid credentials"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	builder := NewResponseBuilder(c)
	locale := i18n.GetLocale(c)

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	if err := req.Validate(); err != nil {
		builder.ErrorWithMessage(http.StatusBadRequest, err.Error(), err)
		return
	}

	tokenPair, cashier, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			middleware.AuditLogError(h.audit, c, "login_failed", "Failed login attempt", err, map[string]interface{}{
				"email": req.Email,
			})
			message := i18n.GetTranslator().Translate(i18n.ErrKeyInvalidCredentials, locale)
			builder.ErrorWithMessage(http.StatusUnauthorized, message, err)
			return
		}
		middleware.AuditLogError(h.audit, c, "login_error", "Login internal error", err, map[string]interface{}{
			"email": req.Email,
		})
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	c.Set("cashier_id", cashier.ID)
	c.Set("cashier_email", cashier.Email)

	middleware.AuditLog(h.audit, c, "login", "Cashier logged in", map[string]interface{}{
		"email": cashier.Email,
	})

	builder.SuccessOK(dto.LoginResponse{
		Token:        tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		Cashier: dto.CashierResponse{
			Email: cashier.Email,
			Name:  cashier.Name,
		},
	})
}

// RefreshToken handles POST /api/auth/refresh requests.
//
// @Summary      Refresh access token
// @Description  Rotates a refresh token into a new token pair. The refresh token is read from the X-Refresh-Token header.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        X-Refresh-Token header string true "Refresh token"
// @Success      200 {object} dto.SuccessResponse{data=dto.LoginResponse}
// @Failure      400 {object} dto.ErrorResponse "Missing refresh token"
// @Failure      401 {object} dto.ErrorResponse "Invalid refresh token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	builder := NewResponseBuilder(c)
	locale := i18n.GetLocale(c)

	refreshToken := c.GetHeader("X-Refresh-Token")
	if refreshToken == "" {
		builder.ErrorWithMessage(http.StatusBadRequest, "X-Refresh-Token header is required", nil)
		return
	}

	tokenPair, err := h.authService.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) || errors.Is(err, service.ErrInvalidCredentials) {
			message := i18n.GetTranslator().Translate(i18n.ErrKeyInvalidToken, locale)
			builder.ErrorWithMessage(http.StatusUnauthorized, message, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	builder.SuccessOK(dto.LoginResponse{
		Token:        tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
	})
}

// Logout handles POST /api/auth/logout requests.
//
// @Summary      Cashier logout
// @Description  Blacklists the access token and deletes the refresh token. Tokens come from the Authorization and X-Refresh-Token headers.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization header string true "Bearer token" default(Bearer )
// @Param        X-Refresh-Token header string true "Refresh token"
// @Success      200 {object} dto.SuccessResponse
// @Failure      400 {object} dto.ErrorResponse "Missing refresh token"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	builder := NewResponseBuilder(c)

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		builder.ErrorWithMessage(http.StatusUnauthorized, "authorization header required", nil)
		return
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		builder.ErrorWithMessage(http.StatusUnauthorized, "invalid authorization header format", nil)
		return
	}

	accessToken := strings.TrimPrefix(authHeader, bearerPrefix)
	if accessToken == "" {
		builder.ErrorWithMessage(http.StatusUnauthorized, "access token required", nil)
		return
	}

	refreshToken := c.GetHeader("X-Refresh-Token")
	if refreshToken == "" {
		builder.ErrorWithMessage(http.StatusBadRequest, "X-Refresh-Token header is required", nil)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), accessToken, refreshToken); err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	middleware.AuditLog(h.audit, c, "logout", "Cashier logged out", nil)
	builder.SuccessOK(map[string]string{"message": "Logged out successfully"})
}
