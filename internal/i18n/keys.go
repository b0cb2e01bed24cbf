// Package i18n provides internationalization support for the checkout service.
package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyUnauthorized indicates missing or invalid authentication.
	ErrKeyUnauthorized = "error.unauthorized"
	// ErrKeyInvalidCredentials indicates invalid login credentials.
	ErrKeyInvalidCredentials = "error.invalid_credentials"
	// ErrKeyAPIKeyRequired indicates that an API key is required.
	ErrKeyAPIKeyRequired = "error.api_key_required"
	// ErrKeyInvalidAPIKey indicates an invalid API key.
	ErrKeyInvalidAPIKey = "error.invalid_api_key"
	// ErrKeyForbidden indicates insufficient permissions.
	ErrKeyForbidden = "error.forbidden"
	// ErrKeyNotFound indicates a resource was not found.
	ErrKeyNotFound = "error.not_found"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyConflict indicates a conflict with current state.
	ErrKeyConflict = "error.conflict"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"
	// ErrKeyInvalidToken indicates an invalid or expired JWT token.
	ErrKeyInvalidToken = "error.invalid_token"
	// ErrKeyTokenRequired indicates that a JWT token is required.
	ErrKeyTokenRequired = "error.token_required"

	// ErrKeyScaleCheckDigit indicates a scale barcode failed its check digit.
	ErrKeyScaleCheckDigit = "error.scale_check_digit"
	// ErrKeyScaleLength indicates a scale barcode with a wrong length.
	ErrKeyScaleLength = "error.scale_length"
	// ErrKeySessionNotFound indicates an unknown register session.
	ErrKeySessionNotFound = "error.session_not_found"
	// ErrKeyLineNotFound indicates an unknown cart line.
	ErrKeyLineNotFound = "error.line_not_found"
	// ErrKeyCouponNotFound indicates an unknown or inactive coupon.
	ErrKeyCouponNotFound = "error.coupon_not_found"
	// ErrKeyUOMNotFound indicates a unit of measure not sold for the item.
	ErrKeyUOMNotFound = "error.uom_not_found"
	// ErrKeyInvalidDiscount indicates a discount out of range.
	ErrKeyInvalidDiscount = "error.invalid_discount"
	// ErrKeyEmptyCart indicates an operation that needs a non-empty cart.
	ErrKeyEmptyCart = "error.empty_cart"
)

// Success message translation keys.
const (
	// SuccessKeyOrderHeld indicates a cart was held as a draft order.
	SuccessKeyOrderHeld = "success.order_held"
)
