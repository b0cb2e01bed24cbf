package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pos-checkout-service/internal/i18n"
	"github.com/guttosm/pos-checkout-service/internal/service"
)

// CatalogHandler provides HTTP handlers for catalog browsing routes. All
// item and group reads are served from the in-memory catalog snapshot;
// batch, serial, and UOM reads go through their TTL-cached services.
type CatalogHandler struct {
	catalog service.CatalogService
	options service.ItemOptionsService
	uoms    service.UOMService
}

// NewCatalogHandler creates a new CatalogHandler instance.
func NewCatalogHandler(catalog service.CatalogService, options service.ItemOptionsService, uoms service.UOMService) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		options: options,
		uoms:    uoms,
	}
}

// ListItems handles GET /api/items requests.
//
// @Summary      Browse catalog items
// @Description  Returns catalog items from the in-memory snapshot, optionally filtered by group and a case-insensitive search over name, code, and barcode.
// @Tags         Catalog
// @Produce      json
// @Param        group  query string false "Item group filter"
// @Param        search query string false "Search term"
// @Success      200 {object} dto.SuccessResponse{data=[]model.CatalogItem}
// @Security     BearerAuth
// @Router       /api/items [get]
func (h *CatalogHandler) ListItems(c *gin.Context) {
	builder := NewResponseBuilder(c)
	items := h.catalog.Items(c.Query("group"), c.Query("search"))
	builder.SuccessOK(items)
}

// ListGroups handles GET /api/items/groups requests.
//
// @Summary      List item groups
// @Tags         Catalog
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=[]string}
// @Security     BearerAuth
// @Router       /api/items/groups [get]
func (h *CatalogHandler) ListGroups(c *gin.Context) {
	builder := NewResponseBuilder(c)
	builder.SuccessOK(h.catalog.Groups())
}

// ItemUOMs handles GET /api/items/:code/uoms requests.
//
// @Summary      Item UOM price list
// @Description  Returns the selling UOMs and prices for an item. When customer_id is given, the customer's price list takes precedence over the standard one.
// @Tags         Catalog
// @Produce      json
// @Param        code        path  string true  "Item code"
// @Param        customer_id query string false "Customer id"
// @Success      200 {object} dto.SuccessResponse{data=model.UOMPriceList}
// @Failure      404 {object} dto.ErrorResponse "No price list for item"
// @Security     BearerAuth
// @Router       /api/items/{code}/uoms [get]
func (h *CatalogHandler) ItemUOMs(c *gin.Context) {
	builder := NewResponseBuilder(c)

	prices, err := h.uoms.Prices(c.Request.Context(), c.Param("code"), c.Query("customer_id"))
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	if prices == nil {
		builder.Error(http.StatusNotFound, i18n.ErrKeyNotFound, nil)
		return
	}

	builder.SuccessOK(prices)
}

// ItemBatches handles GET /api/items/:code/batches requests.
//
// @Summary      Item batch options
// @Description  Returns the in-stock batches for an item, oldest first.
// @Tags         Catalog
// @Produce      json
// @Param        code path string true "Item code"
// @Success      200 {object} dto.SuccessResponse{data=[]model.BatchOption}
// @Security     BearerAuth
// @Router       /api/items/{code}/batches [get]
func (h *CatalogHandler) ItemBatches(c *gin.Context) {
	builder := NewResponseBuilder(c)

	opts, err := h.options.Options(c.Request.Context(), c.Param("code"))
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	builder.SuccessOK(opts.Batches)
}

// ItemSerials handles GET /api/items/:code/serials requests.
//
// @Summary      Item serial options
// @Description  Returns the unsold serial numbers for an item.
// @Tags         Catalog
// @Produce      json
// @Param        code path string true "Item code"
// @Success      200 {object} dto.SuccessResponse{data=[]string}
// @Security     BearerAuth
// @Router       /api/items/{code}/serials [get]
func (h *CatalogHandler) ItemSerials(c *gin.Context) {
	builder := NewResponseBuilder(c)

	opts, err := h.options.Options(c.Request.Context(), c.Param("code"))
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	builder.SuccessOK(opts.Serials)
}
