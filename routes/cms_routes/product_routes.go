package cms_routes

import (
	"github.com/IlyaBatulin/lesopilka/controllers/cms/product_controller"
	"github.com/IlyaBatulin/lesopilka/middleware"
	"github.com/gin-gonic/gin"
)

// SetupProductRoutes expects rg to already require admin auth
func SetupProductRoutes(rg *gin.RouterGroup) {
	product := rg.Group("/products")

	product.GET("", product_controller.GetProducts)
	product.GET("/:id", product_controller.GetProductByID)

	// ════════════════════════════════════════════════════════════
	// Writes (Activity Logging)
	// ════════════════════════════════════════════════════════════
	writes := product.Group("")
	writes.Use(middleware.ActivityLoggingMiddleware())
	{
		writes.POST("", product_controller.CreateProduct)
		writes.PATCH("/:id", product_controller.UpdateProduct)
		writes.DELETE("/:id", product_controller.DeleteProduct)
	}
}
