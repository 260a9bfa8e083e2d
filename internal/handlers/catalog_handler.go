// Package handlers contains the HTTP handlers for the storefront API.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront-service/internal/models"
	"storefront-service/internal/services"
)

// CatalogHandler serves the filtered, paginated catalog views.
type CatalogHandler struct {
	catalogService *services.CatalogService
}

// NewCatalogHandler creates a catalog handler.
func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// Browse handles GET /api/v1/catalog. Facets come in as query params;
// anything absent falls back to the default selection.
func (h *CatalogHandler) Browse(c *gin.Context) {
	sessionID := c.GetString("session_id")

	sel := models.NewFilterSelection()
	if category := c.Query("category"); category != "" {
		sel.SelectCategory(category)
	}
	if gender := c.Query("gender"); gender != "" {
		sel.Gender = gender
	}
	sel.SearchTerm = c.Query("search")
	sel.SearchSubmitted = c.Query("submitted") == "true"
	// An explicit mode overrides the one SelectCategory derived.
	if mode := c.Query("mode"); mode != "" {
		sel.SetMode(models.ParseFilterMode(mode))
	}

	page, err := h.catalogService.Browse(c.Request.Context(), sessionID, sel)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load catalog"})
		return
	}

	c.JSON(http.StatusOK, page)
}

// ShowMore handles POST /api/v1/catalog/show-more.
func (h *CatalogHandler) ShowMore(c *gin.Context) {
	sessionID := c.GetString("session_id")

	page, err := h.catalogService.ShowMore(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load catalog"})
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetProduct handles GET /api/v1/catalog/products/:id.
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": product})
}

// ListCategories handles GET /api/v1/catalog/categories.
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.Categories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": categories})
}
