package handlers

import (
	"net/http"

	"easyfood/store"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CartHandler struct {
	store   *store.Store
	session store.SessionStore
}

func NewCartHandler(st *store.Store, session store.SessionStore) *CartHandler {
	return &CartHandler{store: st, session: session}
}

type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	Notes     string `json:"notes"`
}

// AddItem applies a quantity delta for a product. Quantity is a delta:
// +1 from the plus button, -1 from the minus button. The restaurant and
// unit price come from the product row, never from the client.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := h.store.ResolveUserID(c.Request.Context(), h.session)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	product, err := h.store.ProductByID(c.Request.Context(), req.ProductID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	if !product.Available {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product '" + product.Name + "' is not available"})
		return
	}

	if err := h.store.AddToCart(c.Request.Context(), userID, product.RestaurantID,
		product.ID, req.Quantity, product.Price, req.Notes); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	items, err := h.store.GetCartItems(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated",
		"count":   len(items),
		"items":   items,
	})
}

// GetCart returns the active cart's items with a subtotal (fees are added
// at checkout, not here)
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, err := h.store.ResolveUserID(c.Request.Context(), h.session)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	items, err := h.store.GetCartItems(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":  userID,
		"count":    len(items),
		"items":    items,
		"subtotal": subtotal,
	})
}

// RemoveItem deletes one cart line; unknown ids are a no-op
func (h *CartHandler) RemoveItem(c *gin.Context) {
	if err := h.store.RemoveFromCart(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed"})
}

// ClearCart empties the current user's cart entirely
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, err := h.store.ResolveUserID(c.Request.Context(), h.session)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	if err := h.store.ClearUserCart(c.Request.Context(), userID); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
