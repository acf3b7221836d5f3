package routes

import (
	"easyfood/handlers"
	"easyfood/middleware"
	"easyfood/models"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything SetupRoutes wires into the router.
type Handlers struct {
	Auth    *handlers.AuthHandler
	Cart    *handlers.CartHandler
	Order   *handlers.OrderHandler
	Catalog *handlers.CatalogHandler
	Vendor  *handlers.VendorHandler
}

func SetupRoutes(r *gin.Engine, h Handlers, jwtSecret []byte) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", h.Auth.Register)
		public.POST("/auth/login", h.Auth.Login)
		public.POST("/auth/logout", h.Auth.Logout)
		public.GET("/auth/session", h.Auth.Session)

		// Restaurants & menus (no auth needed)
		public.GET("/restaurants", h.Catalog.ListRestaurants)
		public.GET("/restaurants/:id", h.Catalog.GetRestaurant)
		public.GET("/restaurants/:id/menu", h.Catalog.GetMenu)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", h.Catalog.GetStateMachineInfo)
	}

	// ── Session-identified routes ──────────────────────────────────
	// Cart and order flows resolve the caller through the persisted
	// session (guest or logged-in), matching the single-device model.
	session := r.Group("/api")
	{
		session.GET("/cart", h.Cart.GetCart)
		session.POST("/cart/items", h.Cart.AddItem)
		session.DELETE("/cart/items/:id", h.Cart.RemoveItem)
		session.DELETE("/cart", h.Cart.ClearCart)

		session.POST("/orders", h.Order.Checkout)
		session.GET("/orders", h.Order.ListOrders)
		session.GET("/orders/:id", h.Order.OrderDetail)
		session.PUT("/orders/:id/cancel", h.Order.CancelOrder)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired(jwtSecret))
	{
		auth.GET("/profile", h.Auth.GetProfile)
		auth.PUT("/profile", h.Auth.UpdateProfile)
		auth.DELETE("/profile", h.Auth.DeleteAccount)
	}

	// ── Vendor dashboard routes ────────────────────────────────────
	vendor := r.Group("/api/vendor")
	vendor.Use(middleware.AuthRequired(jwtSecret), middleware.RoleRequired(models.RoleRestaurant))
	{
		vendor.GET("/orders", h.Vendor.GetRestaurantOrders)
		vendor.PUT("/orders/:id/status", h.Vendor.UpdateOrderStatus)
	}
}
