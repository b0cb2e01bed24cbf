// Package service contains the business logic for the POS checkout service.
package service

import (
	"sync"

	"github.com/guttosm/pos-checkout-service/internal/domain/model"
)

// CartStore owns the canonical cart lines, applied coupons, and
// selected customer for one register session. All mutation goes through
// its methods; the invariant that no two lines share an item code is
// enforced here.
type CartStore struct {
	mu       sync.Mutex
	lines    []model.CartLine
	coupons  []model.Coupon
	customer string
}

// NewCartStore creates an empty cart store.
func NewCartStore() *CartStore {
	return &CartStore{}
}

// AddItem upserts a line for the given catalog item. An existing line
// accumulates quantity; a fresh line is created at the item's base
// price and UOM and lands at exactly qty. The two branches are
// deliberately asymmetric: the first scan of a weighed parcel sets the
// scanned quantity, repeat scans add further parcels to it.
func (s *CartStore) AddItem(item model.CatalogItem, qty float64, sourceCode string) model.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ItemCode == item.ItemCode {
			s.lines[i].Quantity += qty
			return s.lines[i]
		}
	}

	line := model.CartLine{
		ItemCode:   item.ItemCode,
		ItemName:   item.ItemName,
		ItemGroup:  item.ItemGroup,
		Price:      item.Price,
		Quantity:   qty,
		UOM:        item.StockUOM,
		SourceCode: sourceCode,
	}
	s.lines = append(s.lines, line)
	return line
}

// SetQuantity replaces a line's quantity. A quantity of zero or less
// removes the line. Returns false if no line with the code exists.
func (s *CartStore) SetQuantity(itemCode string, qty float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ItemCode != itemCode {
			continue
		}
		if qty <= 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		} else {
			s.lines[i].Quantity = qty
		}
		return true
	}
	return false
}

// SetUOM atomically updates a line's unit of measure together with the
// price for that UOM, so readers never observe a mixed pair.
func (s *CartStore) SetUOM(itemCode, uom string, price float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ItemCode == itemCode {
			s.lines[i].UOM = uom
			s.lines[i].Price = price
			return true
		}
	}
	return false
}

// Remove deletes a line. Returns false if the line does not exist.
func (s *CartStore) Remove(itemCode string) bool {
	return s.SetQuantity(itemCode, 0)
}

// Get returns a copy of the line with the given code.
func (s *CartStore) Get(itemCode string) (model.CartLine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ItemCode == itemCode {
			return s.lines[i], true
		}
	}
	return model.CartLine{}, false
}

// Lines returns a copy of all cart lines in insertion order.
func (s *CartStore) Lines() []model.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Len returns the number of cart lines.
func (s *CartStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// ApplyCoupon adds a coupon; coupons are a set keyed by code, so
// applying an already-present code is a no-op. Returns whether the
// coupon was added.
func (s *CartStore) ApplyCoupon(c model.Coupon) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.coupons {
		if existing.Code == c.Code {
			return false
		}
	}
	s.coupons = append(s.coupons, c)
	return true
}

// RemoveCoupon removes a coupon by code.
func (s *CartStore) RemoveCoupon(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.coupons {
		if c.Code == code {
			s.coupons = append(s.coupons[:i], s.coupons[i+1:]...)
			return true
		}
	}
	return false
}

// Coupons returns a copy of the applied coupons.
func (s *CartStore) Coupons() []model.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Coupon, len(s.coupons))
	copy(out, s.coupons)
	return out
}

// SetCustomer records the selected customer for the session. Customer
// identity feeds customer-specific UOM pricing.
func (s *CartStore) SetCustomer(customerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customer = customerID
}

// Customer returns the selected customer id, empty when none.
func (s *CartStore) Customer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customer
}

// Clear empties lines, coupons, and the selected customer.
func (s *CartStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.coupons = nil
	s.customer = ""
}
