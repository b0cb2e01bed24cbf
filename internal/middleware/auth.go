package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/pos-checkout-service/internal/domain/dto"
	"github.com/guttosm/pos-checkout-service/internal/i18n"
)

const (
	// APIKeyHeader is the header carrying a device API key.
	APIKeyHeader = "X-API-Key"
	// APIKeyQuery is the query-parameter fallback for clients that
	// cannot set headers.
	APIKeyQuery = "api_key"
)

// APIKeyAuth gates requests on a per-device API key, the usual setup for
// self-checkout kiosks that have no cashier login. With no keys configured
// the middleware is a no-op.
func APIKeyAuth(validKeys map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(validKeys) == 0 {
			c.Next()
			return
		}

		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			key = c.Query(APIKeyQuery)
		}

		switch {
		case key == "":
			rejectUnauthorized(c, i18n.ErrKeyAPIKeyRequired)
		case !validKeys[key]:
			rejectUnauthorized(c, i18n.ErrKeyInvalidAPIKey)
		default:
			c.Next()
		}
	}
}

func rejectUnauthorized(c *gin.Context, messageKey string) {
	message := i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(c))
	errorResp := dto.NewError(dto.ErrCodeUnauthorized, message).
		WithRequestID(GetRequestID(c))
	c.AbortWithStatusJSON(http.StatusUnauthorized, errorResp)
}
