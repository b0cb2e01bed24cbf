// Package model defines the core domain entities for the POS checkout service.
package model

// CatalogItem is a sellable item as served from the catalog snapshot.
// Items are immutable from the cart's perspective; prices seen here are
// the base price-list rates.
//
// @Description Catalog item with base price and stock information
type CatalogItem struct {
	// ItemCode uniquely identifies the item in the catalog
	ItemCode string `json:"item_code" example:"9900001"`
	// ItemName is the display name
	ItemName string `json:"item_name" example:"Bananas (loose)"`
	// ItemGroup is the catalog category
	ItemGroup string `json:"item_group" example:"Produce"`
	// Price is the base selling price per stock UOM
	Price float64 `json:"price" example:"1.99"`
	// Available is the sellable stock quantity
	Available float64 `json:"available" example:"120"`
	// StockUOM is the base unit of measure
	StockUOM string `json:"stock_uom" example:"Kg"`
	// Barcode is an optional scan code distinct from the item code
	Barcode string `json:"barcode,omitempty" example:"4006381333931"`
	// Image is an optional image URL
	Image string `json:"image,omitempty"`
}

// UOMPrice is one sellable unit of measure with its conversion factor
// and unit price. Prices may differ per customer price list.
type UOMPrice struct {
	UOM              string  `json:"uom" example:"Box"`
	ConversionFactor float64 `json:"conversion_factor" example:"12"`
	Price            float64 `json:"price" example:"21.50"`
}

// UOMPriceList is the full UOM/price answer for one item, optionally
// resolved against a customer-specific price list.
type UOMPriceList struct {
	ItemCode string     `json:"item_code"`
	BaseUOM  string     `json:"base_uom" example:"Kg"`
	UOMs     []UOMPrice `json:"uoms"`
}

// BatchOption is a selectable inventory batch for an item.
type BatchOption struct {
	BatchID string  `json:"batch_id" example:"B-2026-014"`
	Qty     float64 `json:"qty" example:"48"`
}

// ItemOptions groups the lazily fetched batch and serial choices for a
// catalog item. Fetched once per item code and cached for the session.
type ItemOptions struct {
	ItemCode string        `json:"item_code"`
	Batches  []BatchOption `json:"batches"`
	Serials  []string      `json:"serials"`
}

// MatchKind describes what a catalog lookup actually matched when a
// scanned code resolved through a batch or serial barcode.
type MatchKind string

const (
	// MatchItem means the code matched the item code or item barcode.
	MatchItem MatchKind = "item"
	// MatchBatch means the code matched a batch barcode.
	MatchBatch MatchKind = "batch"
	// MatchSerial means the code matched a serial number.
	MatchSerial MatchKind = "serial"
)

// LookupResult is the outcome of a remote identifier lookup: the
// resolved item plus, when the scan hit a batch or serial barcode, the
// matched value for preselecting it on the cart line.
type LookupResult struct {
	Item         CatalogItem `json:"item"`
	MatchedType  MatchKind   `json:"matched_type,omitempty"`
	MatchedValue string      `json:"matched_value,omitempty"`
}
