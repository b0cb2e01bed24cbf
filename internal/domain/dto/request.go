// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

// ScanRequest represents the JSON request body for the scan endpoint
// (the Enter-key path: scale decode then catalog resolution).
//
// @Description Request to scan a barcode or code into the cart
// @Example {"code": "9900001007606"}
type ScanRequest struct {
	// Code is the scanned or submitted code.
	Code string `json:"code" binding:"required" example:"9900001007606"`
} // @name ScanRequest

// InputRequest represents the JSON request body for the typed-input
// endpoint. The full current input value is sent on every keystroke;
// the server debounces and auto-detects scanner bursts.
//
// @Description Current search-field contents for barcode auto-detection
type InputRequest struct {
	// Text is the full current input value.
	Text string `json:"text" example:"4006381333931"`
} // @name InputRequest

// QuantityRequest represents the JSON request body for replacing a cart
// line's quantity. Zero removes the line.
//
// @Description Request to set a cart line quantity
type QuantityRequest struct {
	// Quantity is the new line quantity; zero or less removes the line.
	Quantity float64 `json:"quantity" example:"3"`
} // @name QuantityRequest

// DiscountRequest represents the JSON request body for a line discount
// edit. The percentage is applied before the fixed amount.
//
// @Description Request to set a cart line discount
type DiscountRequest struct {
	// Percent is the percentage discount, 0-100.
	Percent float64 `json:"percent" example:"10" minimum:"0" maximum:"100"`
	// Amount is the fixed currency discount, applied after the percentage.
	Amount float64 `json:"amount" example:"5" minimum:"0"`
} // @name DiscountRequest

// BatchRequest represents the JSON request body for a batch selection.
//
// @Description Request to select a batch for a cart line
type BatchRequest struct {
	// BatchNo is the selected batch identifier.
	BatchNo string `json:"batch_no" binding:"required" example:"B-2026-014"`
} // @name BatchRequest

// SerialRequest represents the JSON request body for a serial selection.
//
// @Description Request to select a serial number for a cart line
type SerialRequest struct {
	// SerialNo is the selected serial number.
	SerialNo string `json:"serial_no" binding:"required" example:"SN-0001"`
} // @name SerialRequest

// UOMRequest represents the JSON request body for a unit-of-measure
// change on a cart line.
//
// @Description Request to switch a cart line to another unit of measure
type UOMRequest struct {
	// UOM is the requested unit of measure.
	UOM string `json:"uom" binding:"required" example:"Box"`
} // @name UOMRequest

// CouponRequest represents the JSON request body for applying a coupon.
//
// @Description Request to apply a gift coupon by code
type CouponRequest struct {
	// Code is the coupon code.
	Code string `json:"code" binding:"required" example:"GIFT-50"`
} // @name CouponRequest

// CustomerRequest represents the JSON request body for selecting the
// customer a sale is for.
//
// @Description Request to select the session customer
type CustomerRequest struct {
	// CustomerID identifies the customer; empty clears the selection.
	CustomerID string `json:"customer_id" example:"CUST-7"`
} // @name CustomerRequest

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate performs custom validation on the discount request.
func (r *DiscountRequest) Validate() error {
	if r.Percent < 0 || r.Percent > 100 {
		return &ValidationError{
			Field:   "percent",
			Message: "must be between 0 and 100",
		}
	}
	if r.Amount < 0 {
		return &ValidationError{
			Field:   "amount",
			Message: "must not be negative",
		}
	}
	return nil
}

// Validate performs custom validation on the scan request.
func (r *ScanRequest) Validate() error {
	if r.Code == "" {
		return &ValidationError{
			Field:   "code",
			Message: "code is required",
		}
	}
	return nil
}
