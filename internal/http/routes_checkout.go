package http

import (
	"github.com/gin-gonic/gin"
)

// CheckoutRoutes registers the register session, cart, and catalog
// browsing routes.
type CheckoutRoutes struct {
	handler *Handler
	catalog *CatalogHandler
}

// NewCheckoutRoutes creates a new CheckoutRoutes instance.
func NewCheckoutRoutes(handler *Handler, catalog *CatalogHandler) *CheckoutRoutes {
	return &CheckoutRoutes{
		handler: handler,
		catalog: catalog,
	}
}

// RegisterRoutes registers all checkout routes on the given group.
func (r *CheckoutRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	sessions := rg.Group("/sessions")
	{
		sessions.POST("", r.handler.CreateSession)
		sessions.DELETE("/:sessionID", r.handler.CloseSession)

		sessions.GET("/:sessionID/cart", r.handler.GetCart)
		sessions.DELETE("/:sessionID/cart", r.handler.ClearCart)

		sessions.POST("/:sessionID/scan", r.handler.Scan)
		sessions.POST("/:sessionID/input", r.handler.Input)

		sessions.PUT("/:sessionID/lines/:code/quantity", r.handler.SetQuantity)
		sessions.DELETE("/:sessionID/lines/:code", r.handler.RemoveLine)
		sessions.PUT("/:sessionID/lines/:code/discount", r.handler.SetDiscount)
		sessions.PUT("/:sessionID/lines/:code/batch", r.handler.SelectBatch)
		sessions.PUT("/:sessionID/lines/:code/serial", r.handler.SelectSerial)
		sessions.PUT("/:sessionID/lines/:code/uom", r.handler.SelectUOM)

		sessions.POST("/:sessionID/coupons", r.handler.ApplyCoupon)
		sessions.DELETE("/:sessionID/coupons/:code", r.handler.RemoveCoupon)
		sessions.PUT("/:sessionID/customer", r.handler.SetCustomer)

		sessions.POST("/:sessionID/hold", r.handler.Hold)
	}

	items := rg.Group("/items")
	{
		items.GET("", r.catalog.ListItems)
		items.GET("/groups", r.catalog.ListGroups)
		items.GET("/:code/uoms", r.catalog.ItemUOMs)
		items.GET("/:code/batches", r.catalog.ItemBatches)
		items.GET("/:code/serials", r.catalog.ItemSerials)
	}
}
