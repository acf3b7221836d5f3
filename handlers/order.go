package handlers

import (
	"net/http"

	"easyfood/models"
	"easyfood/statemachine"
	"easyfood/store"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	store   *store.Store
	session store.SessionStore
}

func NewOrderHandler(st *store.Store, session store.SessionStore) *OrderHandler {
	return &OrderHandler{store: st, session: session}
}

type CheckoutRequest struct {
	DeliveryAddress string `json:"delivery_address" binding:"required"`
	CustomerName    string `json:"customer_name" binding:"required"`
	CustomerPhone   string `json:"customer_phone" binding:"required"`
}

// Checkout promotes the active cart into an order
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := h.store.ResolveUserID(c.Request.Context(), h.session)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	orderID, err := h.store.CreateOrder(c.Request.Context(), userID,
		req.DeliveryAddress, req.CustomerName, req.CustomerPhone)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	details, err := h.store.GetOrderDetails(c.Request.Context(), orderID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   details,
	})
}

// ListOrders returns the current user's orders, newest first
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, err := h.store.ResolveUserID(c.Request.Context(), h.session)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	orders, err := h.store.GetOrders(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// OrderDetail returns one order with its lines
func (h *OrderHandler) OrderDetail(c *gin.Context) {
	userID, err := h.store.ResolveUserID(c.Request.Context(), h.session)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	details, err := h.store.GetOrderDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	if details.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": details})
}

// CancelOrder cancels the customer's own order while it is still cancellable
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	userID, err := h.store.ResolveUserID(c.Request.Context(), h.session)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	orderID := c.Param("id")

	details, err := h.store.GetOrderDetails(c.Request.Context(), orderID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	if details.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	if err := statemachine.CanTransition(details.Status, models.StatusCancelled, "customer"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":         "Cannot cancel order",
			"reason":        err.Error(),
			"current_state": details.Status,
		})
		return
	}

	if err := h.store.UpdateOrderStatus(c.Request.Context(), orderID, models.StatusCancelled); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order_id": orderID})
}
