// Package i18n provides internationalization support for the checkout
// service. It handles translation of user-facing messages and error messages.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	// defaultTranslator is the singleton translator instance.
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: getDefaultMessages(),
	}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the translated message for the given key and locale.
// Falls back to DefaultLocale if the locale is not found.
func (t *Translator) Translate(key, locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}

	localeMessages, ok := t.messages[locale]
	if !ok {
		localeMessages = t.messages[DefaultLocale]
	}

	msg, ok := localeMessages[key]
	if !ok {
		// Fallback to default locale
		if defaultMessages := t.messages[DefaultLocale]; defaultMessages != nil {
			if fallbackMsg, exists := defaultMessages[key]; exists {
				return fallbackMsg
			}
		}
		return key
	}

	return msg
}

// GetLocale extracts the locale from the gin context.
// Checks Accept-Language header and falls back to DefaultLocale.
func GetLocale(c *gin.Context) string {
	acceptLang := c.GetHeader(AcceptLanguageHeader)
	if acceptLang == "" {
		return DefaultLocale
	}

	// Parse Accept-Language header (e.g., "en-US,en;q=0.9,es;q=0.8")
	parts := strings.Split(acceptLang, ",")
	if len(parts) > 0 {
		lang := strings.TrimSpace(strings.Split(parts[0], ";")[0])
		// Extract base language (e.g., "en" from "en-US")
		if idx := strings.Index(lang, "-"); idx > 0 {
			lang = lang[:idx]
		}
		lang = strings.ToLower(lang)
		if _, ok := getDefaultMessages()[lang]; ok {
			return lang
		}
	}

	return DefaultLocale
}

// getDefaultMessages returns the default message translations.
func getDefaultMessages() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			// Error messages
			"error.invalid_request":      "Invalid request",
			"error.invalid_request_body": "Invalid request body",
			"error.internal_error":       "An unexpected error occurred",
			"error.unauthorized":         "Unauthorized",
			"error.invalid_credentials":  "Invalid email or password",
			"error.api_key_required":     "API key is required",
			"error.invalid_api_key":      "Invalid API key",
			"error.forbidden":            "Forbidden",
			"error.not_found":            "Not found",
			"error.rate_limit_exceeded":  "Too many requests, please try again later",
			"error.conflict":             "Conflict",
			"error.timeout":              "Request timed out",
			"error.invalid_token":        "Invalid or expired token",
			"error.token_required":       "Authentication token is required",

			"error.scale_check_digit": "Scale barcode check digit mismatch",
			"error.scale_length":      "Scale barcode must be 13 digits",
			"error.session_not_found": "Register session not found",
			"error.line_not_found":    "Cart line not found",
			"error.coupon_not_found":  "Coupon not found or inactive",
			"error.uom_not_found":     "Unit of measure not sold for this item",
			"error.invalid_discount":  "Discount must be 0-100 percent and a non-negative amount",
			"error.empty_cart":        "Cart is empty",

			// Success messages
			"success.order_held": "Order held successfully",
		},
		"es": {
			// Error messages
			"error.invalid_request":      "Solicitud inválida",
			"error.invalid_request_body": "Cuerpo de la solicitud inválido",
			"error.internal_error":       "Ocurrió un error inesperado",
			"error.unauthorized":         "No autorizado",
			"error.invalid_credentials":  "Correo o contraseña inválidos",
			"error.api_key_required":     "Se requiere una clave de API",
			"error.invalid_api_key":      "Clave de API inválida",
			"error.forbidden":            "Prohibido",
			"error.not_found":            "No encontrado",
			"error.rate_limit_exceeded":  "Demasiadas solicitudes, intente más tarde",
			"error.conflict":             "Conflicto",
			"error.timeout":              "La solicitud expiró",
			"error.invalid_token":        "Token inválido o expirado",
			"error.token_required":       "Se requiere un token de autenticación",

			"error.scale_check_digit": "Dígito de control del código de balanza no coincide",
			"error.scale_length":      "El código de balanza debe tener 13 dígitos",
			"error.session_not_found": "Sesión de caja no encontrada",
			"error.line_not_found":    "Línea del carrito no encontrada",
			"error.coupon_not_found":  "Cupón no encontrado o inactivo",
			"error.uom_not_found":     "Unidad de medida no disponible para este artículo",
			"error.invalid_discount":  "El descuento debe ser 0-100 por ciento y un monto no negativo",
			"error.empty_cart":        "El carrito está vacío",

			// Success messages
			"success.order_held": "Orden puesta en espera con éxito",
		},
	}
}
