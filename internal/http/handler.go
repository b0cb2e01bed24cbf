package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/pos-checkout-service/internal/barcode"
	"github.com/guttosm/pos-checkout-service/internal/domain/dto"
	"github.com/guttosm/pos-checkout-service/internal/i18n"
	"github.com/guttosm/pos-checkout-service/internal/middleware"
	"github.com/guttosm/pos-checkout-service/internal/service"
)

// Handler provides HTTP handlers for register session and cart routes.
type Handler struct {
	checkout service.CheckoutService
	audit    service.AuditService
}

// NewHandler creates a new Handler instance.
func NewHandler(checkout service.CheckoutService, audit service.AuditService) *Handler {
	return &Handler{
		checkout: checkout,
		audit:    audit,
	}
}

// session resolves the :sessionID route param. On an unknown id it writes
// the 404 response and returns nil.
func (h *Handler) session(c *gin.Context, builder *ResponseBuilder) *service.Session {
	sess, err := h.checkout.Session(c.Param("sessionID"))
	if err != nil {
		builder.Error(http.StatusNotFound, i18n.ErrKeySessionNotFound, err)
		return nil
	}
	return sess
}

// serviceError maps checkout sentinels to HTTP statuses and translated
// messages. Anything unrecognized is a 500.
func (h *Handler) serviceError(builder *ResponseBuilder, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		builder.Error(http.StatusNotFound, i18n.ErrKeySessionNotFound, err)
	case errors.Is(err, service.ErrLineNotFound):
		builder.Error(http.StatusNotFound, i18n.ErrKeyLineNotFound, err)
	case errors.Is(err, service.ErrCouponNotFound):
		builder.Error(http.StatusNotFound, i18n.ErrKeyCouponNotFound, err)
	case errors.Is(err, service.ErrUOMNotFound):
		builder.Error(http.StatusNotFound, i18n.ErrKeyUOMNotFound, err)
	case errors.Is(err, service.ErrInvalidDiscount):
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidDiscount, err)
	case errors.Is(err, service.ErrEmptyCart):
		builder.Error(http.StatusBadRequest, i18n.ErrKeyEmptyCart, err)
	case errors.Is(err, barcode.ErrCheckDigit):
		builder.Error(http.StatusBadRequest, i18n.ErrKeyScaleCheckDigit, err)
	case errors.Is(err, barcode.ErrScaleLength):
		builder.Error(http.StatusBadRequest, i18n.ErrKeyScaleLength, err)
	default:
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
	}
}

// cashierID returns the authenticated cashier id hex, empty when auth is
// disabled.
func cashierID(c *gin.Context) string {
	if v, exists := c.Get("cashier_id"); exists {
		if id, ok := v.(primitive.ObjectID); ok {
			return id.Hex()
		}
	}
	return ""
}

// CreateSession handles POST /api/sessions requests.
//
// @Summary      Open register session
// @Description  Creates an isolated register session with an empty cart.
// @Tags         Sessions
// @Produce      json
// @Success      201 {object} dto.SuccessResponse{data=dto.SessionResponse}
// @Security     BearerAuth
// @Router       /api/sessions [post]
func (h *Handler) CreateSession(c *gin.Context) {
	builder := NewResponseBuilder(c)

	sess := h.checkout.CreateSession()

	middleware.AuditLog(h.audit, c, "open_session", "Register session opened", map[string]interface{}{
		"session_id": sess.ID,
	})
	builder.SuccessCreated(dto.SessionResponse{SessionID: sess.ID})
}

// CloseSession handles DELETE /api/sessions/:sessionID requests.
//
// @Summary      Close register session
// @Tags         Sessions
// @Produce      json
// @Success      200 {object} dto.SuccessResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/sessions/{sessionID} [delete]
func (h *Handler) CloseSession(c *gin.Context) {
	builder := NewResponseBuilder(c)
	sess := h.session(c, builder)
	if sess == nil {
		return
	}

	h.checkout.CloseSession(sess.ID)
	middleware.AuditLog(h.audit, c, "close_session", "Register session closed", nil)
	builder.SuccessOK(map[string]string{"status": "closed"})
}

// GetCart handles GET /api/sessions/:sessionID/cart requests.
//
// @Summary      Cart projection
// @Description  Returns the computed view of the cart: per-line effective prices and totals, coupons, subtotal and the floored grand total.
// @Tags         Cart
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=model.OrderProjection}
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/sessions/{sessionID}/cart [get]
func (h *Handler) GetCart(c *gin.Context) {
	builder := NewResponseBuilder(c)
	sess := h.session(c, builder)
	if sess == nil {
		return
	}

	builder.SuccessOK(h.checkout.Projection(sess))
}

// ClearCart handles DELETE /api/sessions/:sessionID/cart requests.
//
// @Summary      Clear cart
// @Description  Removes all lines, coupons, and line state from the session.
// @Tags         Cart
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=model.OrderProjection}
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/sessions/{sessionID}/cart [delete]
func (h *Handler) ClearCart(c *gin.Context) {
	builder := NewResponseBuilder(c)
	sess := h.session(c, builder)
	if sess == nil {
		return
	}

	h.checkout.ClearCart(sess)
	middleware.AuditLog(h.audit, c, "clear_cart", "Cart cleared", nil)
	builder.SuccessOK(h.checkout.Projection(sess))
}

// Scan handles POST /api/sessions/:sessionID/scan requests.
//
// @Summary      Scan a code
// @Description  The Enter-key path: a scale-prefixed 13-digit code is decoded strictly (bad check digit is rejected), anything else resolves against the catalog. An unrecognized code is reported as a no-op, not an error.
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        request body dto.ScanRequest true "Raw scanned code"
// @Success      200 {object} dto.SuccessResponse{data=service.ScanResult}
// @Failure      400 {object} dto.ErrorResponse "Scale barcode rejected"
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/sessions/{sessionID}/scan [post]
func (h *Handler) Scan(c *gin.Context) {
	builder := NewResponseBuilder(c)
	sess := h.session(c, builder)
	if sess == nil {
		return
	}

	var req dto.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	result, err := h.checkout.Scan(c.Request.Context(), sess, req.Code)
	if err != nil {
		middleware.AuditLogError(h.audit, c, "scan", "Scan rejected", err, map[string]interface{}{
			"code": req.Code,
		})
		h.serviceError(builder, err)
		return
	}

	middleware.AuditLog(h.audit, c, "scan", "Code scanned", map[string]interface{}{
		"code":  req.Code,
		"added": result.Added,
		"kind":  result.Kind,
	})
	builder.SuccessOK(result)
}

// Input handles POST /api/sessions/:sessionID/input requests.
//
// @Summary      Typed input
// @Description  Feeds one snapshot of the register's free-text field into the session's scanner auto-detector. A detected barcode burst is scanned after the quiet window; ordinary typing is left to the search UI.
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        request body dto.InputRequest true "Current text field contents"
// @Success      202 {object} dto.SuccessResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/sessions/{sessionID}/input [post]
func (h *Handler) Input(c *gin.Context) {
	builder := NewResponseBuilder(c)
	sess := h.session(c, builder)
	if sess == nil {
		return
	}

	var req dto.InputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	h.checkout.Input(sess, req.Text)
	builder.SuccessAccepted(map[string]string{"status": "accepted"})
}

// SetQuantity handles PUT /api/sessions/:sessionID/lines/:code/quantity requests.
//
// @Summary      Set line quantity
// @Description  Sets the line to exactly the given quantity; zero or negative removes the line.
// @Tags         Lines
// @Accept       json
// @Produce      json
// @Param        request body dto.QuantityRequest true "New quantity"
// @Success      200 {object} dto.SuccessResponse{data=model.OrderProjection}
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/sessions/{sessionID}/lines/{code}/quantity [put]
func (h *Handler) SetQuantity(c *gin.Context) {
	builder := NewResponseBuilder(c)
	sess := h.session(c, builder)
	if sess == nil {
		return
	}

	var req dto.QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	if err := h.checkout.SetQuantity(sess, c.Param("code"), req.Quantity); err != nil {
		h.serviceError(builder, err)
		return
	}

	middleware.AuditLog(h.audit, c, "set_quantity", "Line quantity changed", map[string]interface{}{
		"item_code": c.Param("code"),
		"quantity":  req.Quantity,
	})
	builder.SuccessOK(h.checkout.Projection(sess))
}

// RemoveLine handles DELETE /api/sessions/:sessionID/lines/:code requests.
//
// @Summary      Remove cart line
// @Tags         Lines
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=model.OrderProjection}
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/sessions/{sessionID}/lines/{code} [delete]
func (h *Handler) RemoveLine(c *gin.Context) {
	builder := NewResponseBuilder(c)
	sess := h.session(c, builder)
	if sess == nil {
		return
	}

	if err := h.checkout.RemoveLine(sess, c.Param("code")); err != nil {
		h.serviceError(builder, err)
		return
	}

	middleware.AuditLog(h.audit, c, "remove_line", "Line removed", map[string]interface{}{
		"item_code": c.Param("code"),
	})
	builder.SuccessOK(h.checkout.Projection(sess))
}

// SetDiscount handles PUT /api/sessions/:sessionID/lines/:code/discount requests.
//
// @Summary      Set line discount
// @Description  Applies a percentage and a flat amount to the line. Percentage applies first, then the amount; the effective price is clamped at zero.
// @Tags         Lines
// @Accept       json
// @Produce      json
// @Param        request body dto.DiscountRequest true "Discount percent and amount"
// @Success      200 {object} dto.SuccessResponse{data=model.OrderProjection}
// @Failure      400 {object} dto.ErrorResponse "Discount out of range"
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/sessions/{sessionID}/lines/{code}/discount [put]
func (h *Handler) SetDiscount(c *gin.Context) {
	builder := NewResponseBuilder(c)
	sess := h.session(c, builder)
	if sess == nil {
		return
	}

	var req dto.DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	if err := req.Validate(); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidDiscount, err)
		return
	}

	if err := h.checkout.SetDiscount(sess, c.Param("code"), req.Percent, req.Amount); err != nil {
		h.serviceError(builder, err)
		return
	}

	middleware.AuditLog(h.audit, c, "set_discount", "Line discount changed", map[string]interface{}{
		"item_code": c.Param("code"),
		"percent":   req.Percent,
		"amount":    req.Amount,
	})
	builder.SuccessOK(h.checkout.Projection(sess))
}

// SelectBatch handles PUT /api/sessions/:sessionID/lines/:code/batch requests.
//
// @Summary      Select batch for line
// @Tags         Lines
// @Accept       json
// @Produce      json
// @Param        request body dto.BatchRequest true "Batch number"
// @Success      200 {object} dto.SuccessResponse{data=model.OrderProjection}
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/sessions/{sessionID}/lines/{code}/batch [put]
func (h *Handler) SelectBatch(c *gin.Context) {
	builder := NewResponseBuilder(c)
	sess := h.session(c, builder)
	if sess == nil {
		return
	}

	var req dto.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	if err := h.checkout.SelectBatch(c.Request.Context(), sess, c.Param("code"), req.BatchNo); err != nil {
		h.serviceError(builder, err)
		return
	}

	builder.SuccessOK(h.checkout.Projection(sess))
}

// SelectSerial handles PUT /api/sessions/:sessionID/lines/:code/serial requests.
//
// @Summary      Select serial for line
// @Tags         Lines
// @Accept       json
// @Produce      json
// @Param        request body dto.SerialRequest true "Serial number"
// @Success      200 {object} dto.SuccessResponse{data=model.OrderProjection}
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/sessions/{sessionID}/lines/{code}/serial [put]
func (h *Handler) SelectSerial(c *gin.Context) {
	builder := NewResponseBuilder(c)
	sess := h.session(c, builder)
	if sess == nil {
		return
	}

	var req dto.SerialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	if err := h.checkout.SelectSerial(sess, c.Param("code"), req.SerialNo); err != nil {
		h.serviceError(builder, err)
		return
	}

	builder.SuccessOK(h.checkout.Projection(sess))
}

// SelectUOM handles PUT /api/sessions/:sessionID/lines/:code/uom requests.
//
// @Summary      Switch line unit of measure
// @Description  Re-prices the line in the selected unit of measure. The price fetch is stamped per line; a response arriving after a newer selection is discarded.
// @Tags         Lines
// @Accept       json
// @Produce      json
// @Param        request body dto.UOMRequest true "Unit of measure"
// @Success      200 {object} dto.SuccessResponse{data=model.OrderProjection}
// @Failure      404 {object} dto.ErrorResponse "Line or UOM not found"
// @Security     BearerAuth
// @Router       /api/sessions/{sessionID}/lines/{code}/uom [put]
func (h *Handler) SelectUOM(c *gin.Context) {
	builder := NewResponseBuilder(c)
	sess := h.session(c, builder)
	if sess == nil {
		return
	}

	var req dto.UOMRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	if err := h.checkout.SelectUOM(c.Request.Context(), sess, c.Param("code"), req.UOM); err != nil {
		h.serviceError(builder, err)
		return
	}

	middleware.AuditLog(h.audit, c, "select_uom", "Line UOM changed", map[string]interface{}{
		"item_code": c.Param("code"),
		"uom":       req.UOM,
	})
	builder.SuccessOK(h.checkout.Projection(sess))
}

// ApplyCoupon handles POST /api/sessions/:sessionID/coupons requests.
//
// @Summary      Apply gift coupon
// @Description  Applies an active coupon by code. The same code applies only once; the cart total is floored at zero.
// @Tags         Coupons
// @Accept       json
// @Produce      json
// @Param        request body dto.CouponRequest true "Coupon code"
// @Success      200 {object} dto.SuccessResponse{data=model.OrderProjection}
// @Failure      404 {object} dto.ErrorResponse "Coupon unknown or inactive"
// @Security     BearerAuth
// @Router       /api/sessions/{sessionID}/coupons [post]
func (h *Handler) ApplyCoupon(c *gin.Context) {
	builder := NewResponseBuilder(c)
	sess := h.session(c, builder)
	if sess == nil {
		return
	}

	var req dto.CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	if err := h.checkout.ApplyCoupon(c.Request.Context(), sess, req.Code); err != nil {
		middleware.AuditLogError(h.audit, c, "apply_coupon", "Coupon rejected", err, map[string]interface{}{
			"code": req.Code,
		})
		h.serviceError(builder, err)
		return
	}

	middleware.AuditLog(h.audit, c, "apply_coupon", "Coupon applied", map[string]interface{}{
		"code": req.Code,
	})
	builder.SuccessOK(h.checkout.Projection(sess))
}

// RemoveCoupon handles DELETE /api/sessions/:sessionID/coupons/:code requests.
//
// @Summary      Remove coupon
// @Tags         Coupons
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=model.OrderProjection}
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/sessions/{sessionID}/coupons/{code} [delete]
func (h *Handler) RemoveCoupon(c *gin.Context) {
	builder := NewResponseBuilder(c)
	sess := h.session(c, builder)
	if sess == nil {
		return
	}

	if err := h.checkout.RemoveCoupon(sess, c.Param("code")); err != nil {
		h.serviceError(builder, err)
		return
	}

	builder.SuccessOK(h.checkout.Projection(sess))
}

// SetCustomer handles PUT /api/sessions/:sessionID/customer requests.
//
// @Summary      Set session customer
// @Description  Attaches a customer to the session so UOM re-pricing resolves against the customer's price list.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        request body dto.CustomerRequest true "Customer id, empty to detach"
// @Success      200 {object} dto.SuccessResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/sessions/{sessionID}/customer [put]
func (h *Handler) SetCustomer(c *gin.Context) {
	builder := NewResponseBuilder(c)
	sess := h.session(c, builder)
	if sess == nil {
		return
	}

	var req dto.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	h.checkout.SetCustomer(sess, req.CustomerID)
	builder.SuccessOK(map[string]string{"customer_id": req.CustomerID})
}

// Hold handles POST /api/sessions/:sessionID/hold requests.
//
// @Summary      Hold cart as draft order
// @Description  Persists the projected cart as a draft order and clears the session for the next customer. An empty cart cannot be held.
// @Tags         Cart
// @Produce      json
// @Success      201 {object} dto.SuccessResponse{data=dto.HoldResponse}
// @Failure      400 {object} dto.ErrorResponse "Cart is empty"
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/sessions/{sessionID}/hold [post]
func (h *Handler) Hold(c *gin.Context) {
	builder := NewResponseBuilder(c)
	sess := h.session(c, builder)
	if sess == nil {
		return
	}

	order, err := h.checkout.Hold(c.Request.Context(), sess, cashierID(c))
	if err != nil {
		middleware.AuditLogError(h.audit, c, "hold_order", "Hold failed", err, nil)
		h.serviceError(builder, err)
		return
	}

	middleware.AuditLog(h.audit, c, "hold_order", "Cart held as draft order", map[string]interface{}{
		"order_id": order.ID.Hex(),
		"total":    order.Total,
	})
	builder.SuccessCreated(dto.HoldResponse{OrderID: order.ID.Hex(), Total: order.Total})
}
