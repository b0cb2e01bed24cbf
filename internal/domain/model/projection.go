package model

// LineTotal is the projected view of one cart line after discounts.
//
// @Description Cart line with computed effective price and total
type LineTotal struct {
	CartLine
	// EffectivePrice is the unit price after percentage-then-amount discounts
	EffectivePrice float64 `json:"effective_price" example:"1.79"`
	// Total is EffectivePrice multiplied by quantity
	Total float64 `json:"total" example:"13.60"`
	// Options echoes the line's discount/batch/serial state
	Options LineOptions `json:"options"`
}

// OrderProjection is the full computed view of a cart: per-line totals
// plus subtotal, coupon discount, and the floored grand total. It is a
// pure function of cart state and never feeds back into it.
//
// @Description Computed cart totals
type OrderProjection struct {
	Lines          []LineTotal `json:"lines"`
	Coupons        []Coupon    `json:"coupons"`
	Subtotal       float64     `json:"subtotal" example:"63.60"`
	CouponDiscount float64     `json:"coupon_discount" example:"50"`
	Total          float64     `json:"total" example:"13.60"`
}

// Empty returns a projection for an empty cart.
func EmptyProjection() OrderProjection {
	return OrderProjection{
		Lines:   []LineTotal{},
		Coupons: []Coupon{},
	}
}
