package routes

import (
	"github.com/gin-gonic/gin"

	"storefront-dashboard/controllers"
	"storefront-dashboard/middleware"
	"storefront-dashboard/services"
)

// RegisterRoutes wires the dashboard surface. Auth endpoints are open; the
// shopper routes need a session; the admin console is gated by the
// allow-list policy.
func RegisterRoutes(r *gin.Engine, dc *controllers.DashboardController, sessions *services.SessionService) {
	auth := r.Group("/auth")
	{
		auth.POST("/signup", dc.Signup)
		auth.POST("/login", dc.Login)
		auth.POST("/logout", dc.Logout)
	}

	r.GET("/state", dc.State)

	authed := r.Group("/")
	authed.Use(middleware.RequireSession(sessions))
	{
		authed.POST("/view/toggle", dc.ToggleView)

		authed.GET("/products", dc.ListProducts)
		authed.GET("/products/:id", dc.GetProduct)

		authed.GET("/cart", dc.GetCart)
		authed.POST("/cart/items", dc.AddCartItem)
		authed.PUT("/cart/items/:product_id", dc.UpdateCartItem)
		authed.DELETE("/cart/items/:product_id", dc.RemoveCartItem)
		authed.DELETE("/cart", dc.ClearCart)
		authed.POST("/cart/checkout", dc.Checkout)

		authed.GET("/orders", dc.ListOrders)
		authed.GET("/orders/:id", dc.GetOrder)
	}

	admin := r.Group("/admin")
	admin.Use(middleware.RequireSession(sessions), middleware.AdminOnly(sessions))
	{
		admin.POST("/products", dc.CreateProduct)
		admin.POST("/inventory", dc.CreateInventory)
		admin.POST("/orders", dc.CreateOrder)
		admin.GET("/orders", dc.ListAllOrders)
		admin.PUT("/orders/:id/approve", dc.ApproveOrder)
		admin.PUT("/orders/:id/reject", dc.RejectOrder)
	}
}
