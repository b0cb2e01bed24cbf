package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/pos-checkout-service/internal/barcode"
	"github.com/guttosm/pos-checkout-service/internal/domain/model"
	"github.com/guttosm/pos-checkout-service/internal/metrics"
	"github.com/guttosm/pos-checkout-service/internal/repository"
)

var (
	// ErrLineNotFound is returned when a line edit targets an item code
	// not present in the cart.
	ErrLineNotFound = errors.New("cart line not found")
	// ErrCouponNotFound is returned when a coupon code does not resolve
	// to an active coupon.
	ErrCouponNotFound = errors.New("coupon not found")
	// ErrInvalidDiscount is returned when a discount edit is out of
	// range: percent must be 0-100, amount must be >= 0.
	ErrInvalidDiscount = errors.New("invalid discount")
	// ErrUOMNotFound is returned when the requested unit of measure is
	// not in the item's price list.
	ErrUOMNotFound = errors.New("unit of measure not found")
	// ErrEmptyCart is returned when holding a cart with no lines.
	ErrEmptyCart = errors.New("cart is empty")
)

// ScanResult reports what a scan did to the cart. Added is false for
// misses and ignored input: an unrecognized code on the scan path is
// treated as a search term, not an error.
type ScanResult struct {
	Added bool           `json:"added"`
	Line  model.CartLine `json:"line,omitempty"`
	Kind  string         `json:"kind,omitempty"` // "scale", "item", "search"
}

// CheckoutConfig tunes the reconciliation engine.
type CheckoutConfig struct {
	// ScannerOnly disables typed-input lookup; only scanner (scale or
	// exact barcode) input mutates the cart.
	ScannerOnly bool
	// DetectWindow is the quiet period before typed input is treated as
	// a scanner burst.
	DetectWindow time.Duration
}

// CheckoutService is the register reconciliation engine: it turns
// scanned and typed input into cart mutations, maintains per-line
// option state and pending preselects, and projects totals.
type CheckoutService interface {
	CreateSession() *Session
	Session(id string) (*Session, error)
	CloseSession(id string)

	// Scan is the Enter-key path: strict scale decode, then catalog
	// resolution, then cart upsert.
	Scan(ctx context.Context, sess *Session, raw string) (ScanResult, error)

	// Input feeds one typed-input snapshot into the session's
	// auto-detector; a detected barcode is scanned asynchronously.
	Input(sess *Session, text string)

	// Projection computes the current order view.
	Projection(sess *Session) model.OrderProjection

	SetQuantity(sess *Session, itemCode string, qty float64) error
	RemoveLine(sess *Session, itemCode string) error
	SetDiscount(sess *Session, itemCode string, percent, amount float64) error
	SelectBatch(ctx context.Context, sess *Session, itemCode, batchNo string) error
	SelectSerial(sess *Session, itemCode, serialNo string) error
	SelectUOM(ctx context.Context, sess *Session, itemCode, uom string) error
	ApplyCoupon(ctx context.Context, sess *Session, code string) error
	RemoveCoupon(sess *Session, code string) error
	SetCustomer(sess *Session, customerID string)
	ClearCart(sess *Session)

	// Hold persists the projected cart as a draft order and clears the
	// session for the next customer.
	Hold(ctx context.Context, sess *Session, cashierID string) (*repository.DraftOrder, error)
}

// CheckoutServiceImpl implements CheckoutService.
type CheckoutServiceImpl struct {
	decoder  *barcode.Decoder
	catalog  CatalogService
	options  ItemOptionsService
	uoms     UOMService
	coupons  repository.CouponRepositoryInterface
	orders   repository.OrderRepositoryInterface
	sessions *SessionManager
	audit    AuditService
	cfg      CheckoutConfig
}

// NewCheckoutService creates the reconciliation engine.
func NewCheckoutService(
	decoder *barcode.Decoder,
	catalog CatalogService,
	options ItemOptionsService,
	uoms UOMService,
	coupons repository.CouponRepositoryInterface,
	orders repository.OrderRepositoryInterface,
	sessions *SessionManager,
	audit AuditService,
	cfg CheckoutConfig,
) *CheckoutServiceImpl {
	if cfg.DetectWindow <= 0 {
		cfg.DetectWindow = barcode.DefaultDetectWindow
	}
	return &CheckoutServiceImpl{
		decoder:  decoder,
		catalog:  catalog,
		options:  options,
		uoms:     uoms,
		coupons:  coupons,
		orders:   orders,
		sessions: sessions,
		audit:    audit,
		cfg:      cfg,
	}
}

// CreateSession opens a new register session.
func (s *CheckoutServiceImpl) CreateSession() *Session {
	sess := s.sessions.Create()
	metrics.ActiveSessions.Set(float64(s.sessions.Len()))
	return sess
}

// Session returns an open session by id.
func (s *CheckoutServiceImpl) Session(id string) (*Session, error) {
	return s.sessions.Get(id)
}

// CloseSession closes a session and drops its state.
func (s *CheckoutServiceImpl) CloseSession(id string) {
	s.sessions.Delete(id)
	metrics.ActiveSessions.Set(float64(s.sessions.Len()))
}

// Scan is the Enter-key path. A scale barcode adds the decoded weight; a
// plain code resolves locally then remotely and adds quantity one. An
// unresolved code is a no-op so free-text search input never errors.
func (s *CheckoutServiceImpl) Scan(ctx context.Context, sess *Session, raw string) (ScanResult, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ScanResult{}, nil
	}

	code, err := s.decoder.DecodeStrict(raw)
	switch {
	case err == nil:
		return s.addScaleCode(ctx, sess, code, raw)
	case errors.Is(err, barcode.ErrScaleLength), errors.Is(err, barcode.ErrCheckDigit):
		metrics.RecordScan("scale", "rejected")
		return ScanResult{}, err
	}

	// Not a scale barcode: plain resolution.
	return s.addPlainCode(ctx, sess, raw)
}

func (s *CheckoutServiceImpl) addScaleCode(ctx context.Context, sess *Session, code barcode.ScaleCode, raw string) (ScanResult, error) {
	item, ok := s.catalog.FindLocal(code.ItemCode)
	if !ok {
		result, err := s.catalog.Lookup(ctx, code.ItemCode)
		if err != nil {
			log.Warn().Err(err).Str("item_code", code.ItemCode).Msg("Scale item lookup failed")
			metrics.RecordScan("scale", "miss")
			return ScanResult{}, nil
		}
		if result == nil {
			metrics.RecordScan("scale", "miss")
			return ScanResult{}, nil
		}
		item = result.Item
	}

	line := sess.Cart.AddItem(item, code.Quantity, raw)
	s.afterLineAdd(sess)
	metrics.RecordScan("scale", "added")
	metrics.RecordCartMutation("add_item")
	s.recordAudit(sess, "scan", "scale barcode added", map[string]interface{}{
		"code":      raw,
		"item_code": item.ItemCode,
		"quantity":  code.Quantity,
	})
	return ScanResult{Added: true, Line: line, Kind: "scale"}, nil
}

func (s *CheckoutServiceImpl) addPlainCode(ctx context.Context, sess *Session, raw string) (ScanResult, error) {
	if item, ok := s.catalog.FindLocal(raw); ok {
		line := sess.Cart.AddItem(item, 1, raw)
		s.afterLineAdd(sess)
		metrics.RecordScan("item", "added")
		metrics.RecordCartMutation("add_item")
		s.recordAudit(sess, "scan", "item added", map[string]interface{}{
			"code":      raw,
			"item_code": item.ItemCode,
		})
		return ScanResult{Added: true, Line: line, Kind: "item"}, nil
	}

	if s.cfg.ScannerOnly {
		metrics.RecordScan("item", "miss")
		return ScanResult{}, nil
	}

	result, err := s.catalog.Lookup(ctx, raw)
	if err != nil {
		log.Warn().Err(err).Str("code", raw).Msg("Catalog lookup failed")
		metrics.RecordScan("search", "miss")
		return ScanResult{}, nil
	}
	if result == nil {
		metrics.RecordScan("search", "miss")
		return ScanResult{}, nil
	}

	// A batch or serial barcode identifies the specific unit being
	// sold, so the match preselects it on the line.
	switch result.MatchedType {
	case model.MatchBatch:
		s.applyPreselect(ctx, sess, result.Item.ItemCode, model.Preselect{
			BatchNo:  result.MatchedValue,
			BatchQty: s.options.BatchQty(ctx, result.Item.ItemCode, result.MatchedValue),
		})
	case model.MatchSerial:
		s.applyPreselect(ctx, sess, result.Item.ItemCode, model.Preselect{
			SerialNo: result.MatchedValue,
		})
	}

	line := sess.Cart.AddItem(result.Item, 1, raw)
	s.afterLineAdd(sess)
	metrics.RecordScan("search", "added")
	metrics.RecordCartMutation("add_item")
	s.recordAudit(sess, "scan", "resolved code added", map[string]interface{}{
		"code":         raw,
		"item_code":    result.Item.ItemCode,
		"matched_type": string(result.MatchedType),
	})
	return ScanResult{Added: true, Line: line, Kind: "search"}, nil
}

// Input feeds typed input into the session's auto-detector. When the
// input settles and looks like a barcode it is resolved with a fresh
// background context, since the originating request is long gone.
//
// Unlike the Enter-key path, scale classification here is lenient: a
// code that is still missing its check digit, or whose check digit was
// mistyped, decodes anyway (with a logged warning) instead of being
// rejected. Hard validation is reserved for deliberate submits.
func (s *CheckoutServiceImpl) Input(sess *Session, text string) {
	detector := sess.Detector(s.cfg.DetectWindow, func(code string) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if scale, ok := s.decoder.Decode(code); ok {
			if _, err := s.addScaleCode(ctx, sess, scale, code); err != nil {
				log.Debug().Err(err).Str("code", code).Msg("Auto-detected scale add failed")
			}
			return
		}

		if _, err := s.Scan(ctx, sess, code); err != nil {
			log.Debug().Err(err).Str("code", code).Msg("Auto-detected scan rejected")
		}
	})
	detector.Input(text)
}

// Projection computes the current order view. It is pure with respect
// to session state.
func (s *CheckoutServiceImpl) Projection(sess *Session) model.OrderProjection {
	return Project(sess.Cart.Lines(), sess.Options(), sess.Cart.Coupons())
}

// SetQuantity replaces a line's quantity; zero or less removes the line.
func (s *CheckoutServiceImpl) SetQuantity(sess *Session, itemCode string, qty float64) error {
	if !sess.Cart.SetQuantity(itemCode, qty) {
		return ErrLineNotFound
	}
	if qty <= 0 {
		sess.dropLineState(itemCode)
		metrics.RecordCartMutation("remove_line")
	} else {
		metrics.RecordCartMutation("set_quantity")
	}
	s.recordAudit(sess, "set_quantity", "quantity changed", map[string]interface{}{
		"item_code": itemCode,
		"quantity":  qty,
	})
	return nil
}

// RemoveLine deletes a line together with its option state.
func (s *CheckoutServiceImpl) RemoveLine(sess *Session, itemCode string) error {
	if !sess.Cart.Remove(itemCode) {
		return ErrLineNotFound
	}
	sess.dropLineState(itemCode)
	metrics.RecordCartMutation("remove_line")
	s.recordAudit(sess, "remove_line", "line removed", map[string]interface{}{
		"item_code": itemCode,
	})
	return nil
}

// SetDiscount stores a line's discount pair after validation. Percent
// and amount are both kept; pricing applies percent first.
func (s *CheckoutServiceImpl) SetDiscount(sess *Session, itemCode string, percent, amount float64) error {
	if percent < 0 || percent > 100 || amount < 0 {
		return ErrInvalidDiscount
	}
	if _, ok := sess.Cart.Get(itemCode); !ok {
		return ErrLineNotFound
	}

	opts := sess.LineOptions(itemCode)
	opts.DiscountPercent = percent
	opts.DiscountAmount = amount
	sess.setOptions(itemCode, opts)
	metrics.RecordCartMutation("set_discount")
	s.recordAudit(sess, "set_discount", "discount changed", map[string]interface{}{
		"item_code": itemCode,
		"percent":   percent,
		"amount":    amount,
	})
	return nil
}

// SelectBatch records a batch choice for a line, capturing the batch's
// available quantity from the options service.
func (s *CheckoutServiceImpl) SelectBatch(ctx context.Context, sess *Session, itemCode, batchNo string) error {
	if _, ok := sess.Cart.Get(itemCode); !ok {
		return ErrLineNotFound
	}

	opts := sess.LineOptions(itemCode)
	opts.BatchNo = batchNo
	opts.BatchQty = s.options.BatchQty(ctx, itemCode, batchNo)
	sess.setOptions(itemCode, opts)
	metrics.RecordCartMutation("select_batch")
	s.recordAudit(sess, "select_batch", "batch selected", map[string]interface{}{
		"item_code": itemCode,
		"batch_no":  batchNo,
	})
	return nil
}

// SelectSerial records a serial choice for a line.
func (s *CheckoutServiceImpl) SelectSerial(sess *Session, itemCode, serialNo string) error {
	if _, ok := sess.Cart.Get(itemCode); !ok {
		return ErrLineNotFound
	}

	opts := sess.LineOptions(itemCode)
	opts.SerialNo = serialNo
	sess.setOptions(itemCode, opts)
	metrics.RecordCartMutation("select_serial")
	s.recordAudit(sess, "select_serial", "serial selected", map[string]interface{}{
		"item_code": itemCode,
		"serial_no": serialNo,
	})
	return nil
}

// SelectUOM switches a line to another unit of measure at that UOM's
// price. A generation stamp taken before the price fetch must still be
// current when the result lands; otherwise a newer selection already
// won and this result is discarded. Fetch failures leave the line
// untouched.
func (s *CheckoutServiceImpl) SelectUOM(ctx context.Context, sess *Session, itemCode, uom string) error {
	if _, ok := sess.Cart.Get(itemCode); !ok {
		return ErrLineNotFound
	}

	gen := sess.nextUOMGeneration(itemCode)
	list, err := s.uoms.Prices(ctx, itemCode, sess.Cart.Customer())
	if err != nil {
		log.Warn().Err(err).Str("item_code", itemCode).Msg("UOM price fetch failed")
		return err
	}
	if list == nil {
		return ErrUOMNotFound
	}

	var price float64
	found := false
	for _, u := range list.UOMs {
		if u.UOM == uom {
			price = u.Price
			found = true
			break
		}
	}
	if !found {
		return ErrUOMNotFound
	}

	if !sess.uomGenerationCurrent(itemCode, gen) {
		log.Debug().Str("item_code", itemCode).Str("uom", uom).Msg("Discarding stale UOM price result")
		return nil
	}

	if !sess.Cart.SetUOM(itemCode, uom, price) {
		return ErrLineNotFound
	}
	metrics.RecordCartMutation("select_uom")
	s.recordAudit(sess, "select_uom", "uom changed", map[string]interface{}{
		"item_code": itemCode,
		"uom":       uom,
		"price":     price,
	})
	return nil
}

// ApplyCoupon resolves a coupon code and adds it to the cart set.
func (s *CheckoutServiceImpl) ApplyCoupon(ctx context.Context, sess *Session, code string) error {
	coupon, err := s.coupons.FindByCode(ctx, code)
	if err != nil {
		return err
	}
	if coupon == nil {
		return ErrCouponNotFound
	}

	if sess.Cart.ApplyCoupon(*coupon) {
		metrics.RecordCartMutation("apply_coupon")
		s.recordAudit(sess, "apply_coupon", "coupon applied", map[string]interface{}{
			"code":  coupon.Code,
			"value": coupon.Value,
		})
	}
	return nil
}

// RemoveCoupon removes an applied coupon by code.
func (s *CheckoutServiceImpl) RemoveCoupon(sess *Session, code string) error {
	if !sess.Cart.RemoveCoupon(code) {
		return ErrCouponNotFound
	}
	metrics.RecordCartMutation("remove_coupon")
	s.recordAudit(sess, "remove_coupon", "coupon removed", map[string]interface{}{
		"code": code,
	})
	return nil
}

// SetCustomer records the customer the sale is for; customer identity
// feeds customer-specific UOM pricing.
func (s *CheckoutServiceImpl) SetCustomer(sess *Session, customerID string) {
	sess.Cart.SetCustomer(customerID)
	metrics.RecordCartMutation("set_customer")
	s.recordAudit(sess, "set_customer", "customer selected", map[string]interface{}{
		"customer_id": customerID,
	})
}

// ClearCart empties the cart and all per-line engine state, including
// pending preselects that never found a line.
func (s *CheckoutServiceImpl) ClearCart(sess *Session) {
	sess.Cart.Clear()
	sess.clearState()
	metrics.RecordCartMutation("clear")
	s.recordAudit(sess, "clear_cart", "cart cleared", nil)
}

// Hold persists the projected cart as a draft order, then clears the
// session so the register is free for the next customer.
func (s *CheckoutServiceImpl) Hold(ctx context.Context, sess *Session, cashierID string) (*repository.DraftOrder, error) {
	projection := s.Projection(sess)
	if len(projection.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	order := repository.NewDraftOrder(sess.ID, cashierID, sess.Cart.Customer(), projection)
	created, err := s.orders.CreateDraft(ctx, order)
	if err != nil {
		return nil, err
	}

	s.ClearCart(sess)
	metrics.RecordCartMutation("hold")
	s.recordAudit(sess, "hold_order", "order held", map[string]interface{}{
		"order_id": created.ID.Hex(),
		"total":    created.Total,
	})
	return created, nil
}

// applyPreselect routes a batch/serial signal either into an existing
// line's options or into the pending buffer when the line is not in the
// cart yet.
func (s *CheckoutServiceImpl) applyPreselect(ctx context.Context, sess *Session, itemCode string, p model.Preselect) {
	if _, ok := sess.Cart.Get(itemCode); !ok {
		sess.addPending(itemCode, p)
		return
	}
	s.mergePreselect(sess, itemCode, p)
}

// mergePreselect folds a preselect into a line's options.
func (s *CheckoutServiceImpl) mergePreselect(sess *Session, itemCode string, p model.Preselect) {
	opts := sess.LineOptions(itemCode)
	if p.BatchNo != "" {
		opts.BatchNo = p.BatchNo
		opts.BatchQty = p.BatchQty
	}
	if p.SerialNo != "" {
		opts.SerialNo = p.SerialNo
	}
	sess.setOptions(itemCode, opts)
}

// afterLineAdd is the drain pass: pending preselects whose line now
// exists are consumed into that line's options.
func (s *CheckoutServiceImpl) afterLineAdd(sess *Session) {
	for itemCode := range sess.pendingEntries() {
		if _, ok := sess.Cart.Get(itemCode); !ok {
			continue
		}
		if p, ok := sess.takePending(itemCode); ok {
			s.mergePreselect(sess, itemCode, p)
		}
	}
}

func (s *CheckoutServiceImpl) recordAudit(sess *Session, action, message string, fields map[string]interface{}) {
	if s.audit == nil {
		return
	}
	s.audit.Record(&model.AuditEntry{
		Level:      "info",
		Message:    message,
		SessionID:  sess.ID,
		ActionType: action,
		Fields:     fields,
	})
}
