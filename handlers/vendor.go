package handlers

import (
	"net/http"

	"easyfood/models"
	"easyfood/statemachine"
	"easyfood/store"

	"github.com/gin-gonic/gin"
)

// VendorHandler backs the vendor dashboard: incoming orders per restaurant
// and status transitions performed by restaurant staff.
type VendorHandler struct {
	store *store.Store
}

func NewVendorHandler(st *store.Store) *VendorHandler {
	return &VendorHandler{store: st}
}

// GetRestaurantOrders returns a restaurant's orders with a per-status
// summary
func (h *VendorHandler) GetRestaurantOrders(c *gin.Context) {
	restaurantID := c.Query("restaurant_id")
	if restaurantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "restaurant_id query parameter is required"})
		return
	}

	orders, err := h.store.GetOrdersByRestaurant(c.Request.Context(),
		restaurantID, models.OrderStatus(c.Query("status")))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	summary := map[string]int{}
	for _, o := range orders {
		summary[string(o.Status)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant_id": restaurantID,
		"order_summary": summary,
		"count":         len(orders),
		"orders":        orders,
	})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateOrderStatus handles the restaurant's state transitions
func (h *VendorHandler) UpdateOrderStatus(c *gin.Context) {
	orderID := c.Param("id")

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	details, err := h.store.GetOrderDetails(c.Request.Context(), orderID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	if err := statemachine.CanTransition(details.Status, req.Status, "restaurant"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    details.Status,
			"requested":         req.Status,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidTransitionsFrom(details.Status),
		})
		return
	}

	if err := h.store.UpdateOrderStatus(c.Request.Context(), orderID, req.Status); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        orderID,
		"previous_status": string(details.Status),
		"current_status":  string(req.Status),
	})
}
