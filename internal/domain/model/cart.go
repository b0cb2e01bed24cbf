package model

// CartLine is one line of a register cart. There is exactly one line
// per item code; repeated scans accumulate quantity on the same line.
//
// @Description Cart line with resolved price and selected UOM
type CartLine struct {
	// ItemCode equals the resolved catalog item code
	ItemCode string `json:"item_code" example:"9900001"`
	// ItemName is the display name captured at add time
	ItemName string `json:"item_name" example:"Bananas (loose)"`
	// ItemGroup is the catalog category
	ItemGroup string `json:"item_group" example:"Produce"`
	// Price is the current unit price; changes when a different UOM is selected
	Price float64 `json:"price" example:"1.99"`
	// Quantity may be fractional for scale-weighed items
	Quantity float64 `json:"quantity" example:"7.6"`
	// UOM is the selected unit of measure, defaulting to the item's stock UOM
	UOM string `json:"uom" example:"Kg"`
	// SourceCode is the originally scanned code, kept for remote lookups
	SourceCode string `json:"source_code,omitempty"`
}

// LineOptions holds the per-line transient state edited at the
// register: discounts plus batch/serial selection. Keyed by the cart
// line's item code, created lazily on first edit, and discarded when
// the line is removed or the cart cleared.
type LineOptions struct {
	// DiscountPercent is applied first, range 0-100
	DiscountPercent float64 `json:"discount_percent" example:"10"`
	// DiscountAmount is a fixed currency amount subtracted after the percentage
	DiscountAmount float64 `json:"discount_amount" example:"5"`
	// BatchNo is the selected batch, when the item is batch tracked
	BatchNo string `json:"batch_no,omitempty" example:"B-2026-014"`
	// SerialNo is the selected serial, when the item is serialized
	SerialNo string `json:"serial_no,omitempty"`
	// BatchQty is the available quantity of the selected batch
	BatchQty float64 `json:"batch_qty,omitempty" example:"48"`
}

// IsZero reports whether the options carry no edits, so callers can
// avoid materializing empty entries.
func (o LineOptions) IsZero() bool {
	return o == LineOptions{}
}

// Preselect is a batch or serial value discovered during search before
// the target cart line exists. It is buffered per item code and
// consumed the moment a matching line appears; batch and serial for the
// same code merge rather than replace each other.
type Preselect struct {
	BatchNo  string
	SerialNo string
	BatchQty float64
}

// Merge folds another preselect into this one, keeping already captured
// values unless the newer signal carries its own.
func (p Preselect) Merge(other Preselect) Preselect {
	if other.BatchNo != "" {
		p.BatchNo = other.BatchNo
		p.BatchQty = other.BatchQty
	}
	if other.SerialNo != "" {
		p.SerialNo = other.SerialNo
	}
	return p
}

// Coupon is a fixed-value gift coupon applied to the cart. Coupons are
// a set keyed by code; applying the same code twice is a no-op.
type Coupon struct {
	Code        string  `json:"code" example:"GIFT-50"`
	Value       float64 `json:"value" example:"50"`
	Description string  `json:"description,omitempty" example:"Gift card 50"`
}
