package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-service/internal/models"
	"storefront-service/internal/services"
)

// CheckoutHandler exposes checkout staging and reconciliation.
type CheckoutHandler struct {
	checkoutService *services.CheckoutService
}

// NewCheckoutHandler creates a checkout handler.
func NewCheckoutHandler(checkoutService *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// DirectCheckoutRequest is the body for POST /api/v1/checkout/direct.
type DirectCheckoutRequest struct {
	Product      models.Product `json:"product" binding:"required"`
	SelectedSize string         `json:"selectedSize"`
}

// AdjustRequest is the body for POST /api/v1/checkout/items/adjust.
type AdjustRequest struct {
	ID           int64  `json:"id" binding:"required"`
	SelectedSize string `json:"selectedSize"`
	Delta        int    `json:"delta" binding:"required"`
}

func stagingResponse(items []models.CheckoutItem) gin.H {
	return gin.H{
		"items":      items,
		"itemCount":  models.CheckoutTotalItems(items),
		"totalPrice": models.CheckoutTotalPrice(items),
	}
}

// StageDirect handles POST /api/v1/checkout/direct.
func (h *CheckoutHandler) StageDirect(c *gin.Context) {
	sessionID := c.GetString("session_id")

	var req DirectCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.checkoutService.StageDirectItem(c.Request.Context(), sessionID, req.Product, req.SelectedSize); err != nil {
		if errors.Is(err, services.ErrSizeRequired) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Please select a size before checkout"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to stage checkout item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"staged": true})
}

// StageFromCart handles POST /api/v1/checkout/from-cart.
func (h *CheckoutHandler) StageFromCart(c *gin.Context) {
	sessionID := c.GetString("session_id")
	lines := h.checkoutService.StageCartTransfer(c.Request.Context(), sessionID)
	c.JSON(http.StatusOK, gin.H{
		"staged":    true,
		"itemCount": models.TotalItems(lines),
	})
}

// Enter handles POST /api/v1/checkout/enter: it reconciles the staged
// list with any pending one-shot payloads and returns the result.
func (h *CheckoutHandler) Enter(c *gin.Context) {
	sessionID := c.GetString("session_id")
	items := h.checkoutService.EnterCheckout(c.Request.Context(), sessionID)
	c.JSON(http.StatusOK, stagingResponse(items))
}

// GetStaging handles GET /api/v1/checkout.
func (h *CheckoutHandler) GetStaging(c *gin.Context) {
	sessionID := c.GetString("session_id")
	items := h.checkoutService.Staging(c.Request.Context(), sessionID)
	c.JSON(http.StatusOK, stagingResponse(items))
}

// AdjustItem handles POST /api/v1/checkout/items/adjust.
func (h *CheckoutHandler) AdjustItem(c *gin.Context) {
	sessionID := c.GetString("session_id")

	var req AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	items := h.checkoutService.AdjustQuantity(c.Request.Context(), sessionID, req.ID, req.SelectedSize, req.Delta)
	c.JSON(http.StatusOK, stagingResponse(items))
}

// MergeCart handles POST /api/v1/checkout/merge-cart.
func (h *CheckoutHandler) MergeCart(c *gin.Context) {
	sessionID := c.GetString("session_id")
	items := h.checkoutService.MergeCartIntoStaging(c.Request.Context(), sessionID)
	c.JSON(http.StatusOK, stagingResponse(items))
}

// Submit handles POST /api/v1/checkout/submit. An empty staging list is
// rejected; nothing is staged or cleared either way.
func (h *CheckoutHandler) Submit(c *gin.Context) {
	sessionID := c.GetString("session_id")

	summary, err := h.checkoutService.Submit(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCheckout) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No items to checkout"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit checkout"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"submitted": true, "summary": summary})
}

// Summary handles GET /api/v1/checkout/summary.
func (h *CheckoutHandler) Summary(c *gin.Context) {
	sessionID := c.GetString("session_id")
	summary := h.checkoutService.Summarize(c.Request.Context(), sessionID)
	c.JSON(http.StatusOK, summary)
}
