package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront-service/internal/models"
	"storefront-service/internal/services"
)

// CartHandler exposes the session cart.
type CartHandler struct {
	cartService *services.CartService
}

// NewCartHandler creates a cart handler.
func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// AddItemRequest is the body for POST /api/v1/cart/items.
type AddItemRequest struct {
	Product      models.Product `json:"product" binding:"required"`
	SelectedSize string         `json:"selectedSize"`
}

// UpdateItemRequest is the body for PUT /api/v1/cart/items.
type UpdateItemRequest struct {
	ID           int64  `json:"id" binding:"required"`
	Quantity     int    `json:"quantity"`
	SelectedSize string `json:"selectedSize"`
}

func cartResponse(lines []models.CartLine) gin.H {
	return gin.H{
		"items":      lines,
		"itemCount":  models.TotalItems(lines),
		"totalPrice": models.TotalPrice(lines),
	}
}

// GetCart handles GET /api/v1/cart.
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID := c.GetString("session_id")
	lines := h.cartService.GetCart(c.Request.Context(), sessionID)
	c.JSON(http.StatusOK, cartResponse(lines))
}

// AddItem handles POST /api/v1/cart/items.
func (h *CartHandler) AddItem(c *gin.Context) {
	sessionID := c.GetString("session_id")

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	lines := h.cartService.AddToCart(c.Request.Context(), sessionID, models.CartLine{
		Product:      req.Product,
		SelectedSize: req.SelectedSize,
	})
	c.JSON(http.StatusOK, cartResponse(lines))
}

// UpdateItem handles PUT /api/v1/cart/items. Quantity zero or less
// removes the matching lines.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	sessionID := c.GetString("session_id")

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	lines := h.cartService.UpdateQuantity(c.Request.Context(), sessionID, req.ID, req.Quantity, req.SelectedSize)
	c.JSON(http.StatusOK, cartResponse(lines))
}

// RemoveItem handles DELETE /api/v1/cart/items with id and optional
// selectedSize as query params.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sessionID := c.GetString("session_id")

	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	lines := h.cartService.RemoveFromCart(c.Request.Context(), sessionID, id, c.Query("selectedSize"))
	c.JSON(http.StatusOK, cartResponse(lines))
}

// ClearCart handles DELETE /api/v1/cart.
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID := c.GetString("session_id")
	h.cartService.ClearCart(c.Request.Context(), sessionID)
	c.JSON(http.StatusOK, cartResponse(nil))
}
