package handlers

import (
	"net/http"
	"strings"

	"easyfood/catalog"
	"easyfood/statemachine"
	"easyfood/store"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	store       *store.Store
	restaurants []catalog.Restaurant
}

func NewCatalogHandler(st *store.Store, restaurants []catalog.Restaurant) *CatalogHandler {
	return &CatalogHandler{store: st, restaurants: restaurants}
}

// ListRestaurants returns the static restaurant catalog, filterable by
// cuisine or name
func (h *CatalogHandler) ListRestaurants(c *gin.Context) {
	cuisine := strings.ToLower(c.Query("cuisine"))
	search := strings.ToLower(c.Query("search"))

	results := []catalog.Restaurant{}
	for _, r := range h.restaurants {
		if cuisine != "" && !strings.Contains(strings.ToLower(r.Cuisine), cuisine) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(r.Name), search) {
			continue
		}
		results = append(results, r)
	}
	c.JSON(http.StatusOK, gin.H{
		"count":       len(results),
		"restaurants": results,
	})
}

// GetRestaurant returns a single restaurant with its menu
func (h *CatalogHandler) GetRestaurant(c *gin.Context) {
	r := catalog.FindRestaurant(h.restaurants, c.Param("id"))
	if r == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": r})
}

// GetMenu returns a restaurant's seeded products, filterable by category
func (h *CatalogHandler) GetMenu(c *gin.Context) {
	r := catalog.FindRestaurant(h.restaurants, c.Param("id"))
	if r == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	products, err := h.store.Products(c.Request.Context(), r.ID, c.Query("category"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"restaurant": r.Name,
		"count":      len(products),
		"menu":       products,
	})
}

// GetStateMachineInfo returns the order lifecycle for informational purposes
func (h *CatalogHandler) GetStateMachineInfo(c *gin.Context) {
	transitions := statemachine.GetAllTransitions()
	info := make([]gin.H, 0, len(transitions))
	for _, t := range transitions {
		info = append(info, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []string{"completed", "cancelled"},
		"description":     "Order lifecycle state machine",
	})
}
