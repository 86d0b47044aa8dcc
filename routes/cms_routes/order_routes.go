package cms_routes

import (
	"github.com/IlyaBatulin/lesopilka/controllers/cms/order_controller"
	"github.com/IlyaBatulin/lesopilka/middleware"
	"github.com/gin-gonic/gin"
)

// SetupOrderRoutes expects rg to already require admin auth
func SetupOrderRoutes(rg *gin.RouterGroup) {
	order := rg.Group("/orders")

	order.GET("", order_controller.GetOrders)
	order.GET("/stats", order_controller.GetOrderStats)
	order.GET("/:id", order_controller.GetOrderDetailsByID)

	// Update order status (only write operation for orders)
	order.PATCH("/:id/status", middleware.ActivityLoggingMiddleware(), order_controller.UpdateOrderStatus)
}
