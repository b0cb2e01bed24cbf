package service

import (
	"math"

	"github.com/guttosm/pos-checkout-service/internal/domain/model"
)

// EffectivePrice applies a line's discounts to its unit price in fixed
// order: the percentage first, then the fixed amount, each step clamped
// at zero. The ordering is load-bearing: amount-first would produce a
// smaller price whenever both discounts are set, so it must not change.
func EffectivePrice(price float64, opts model.LineOptions) float64 {
	effective := price
	if opts.DiscountPercent > 0 {
		effective = effective * (1 - opts.DiscountPercent/100)
	}
	if opts.DiscountAmount > 0 {
		effective -= opts.DiscountAmount
	}
	if effective < 0 {
		return 0
	}
	return effective
}

// Project computes the full order view from cart lines, per-line
// options, and applied coupons. It is pure: identical inputs always
// produce identical output and nothing is mutated.
func Project(lines []model.CartLine, options map[string]model.LineOptions, coupons []model.Coupon) model.OrderProjection {
	projection := model.EmptyProjection()

	for _, line := range lines {
		opts := options[line.ItemCode]
		effective := EffectivePrice(line.Price, opts)
		projection.Lines = append(projection.Lines, model.LineTotal{
			CartLine:       line,
			EffectivePrice: roundMoney(effective),
			Total:          roundMoney(effective * line.Quantity),
			Options:        opts,
		})
		projection.Subtotal += effective * line.Quantity
	}

	for _, c := range coupons {
		projection.Coupons = append(projection.Coupons, c)
		projection.CouponDiscount += c.Value
	}

	projection.Subtotal = roundMoney(projection.Subtotal)
	projection.CouponDiscount = roundMoney(projection.CouponDiscount)
	projection.Total = roundMoney(math.Max(0, projection.Subtotal-projection.CouponDiscount))
	return projection
}

// roundMoney rounds to two decimal places for display and totals.
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
