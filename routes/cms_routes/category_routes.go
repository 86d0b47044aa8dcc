package cms_routes

import (
	"github.com/IlyaBatulin/lesopilka/controllers/cms/category_controller"
	"github.com/IlyaBatulin/lesopilka/middleware"
	"github.com/gin-gonic/gin"
)

// SetupCategoryRoutes expects rg to already require admin auth
func SetupCategoryRoutes(rg *gin.RouterGroup) {
	category := rg.Group("/categories")

	category.GET("", category_controller.GetCategories)
	category.GET("/:id", category_controller.GetCategoryByID)

	// ════════════════════════════════════════════════════════════
	// Writes (Activity Logging)
	// ════════════════════════════════════════════════════════════
	writes := category.Group("")
	writes.Use(middleware.ActivityLoggingMiddleware())
	{
		writes.POST("", category_controller.CreateCategory)
		writes.PATCH("/:id", category_controller.UpdateCategory)
		writes.DELETE("/:id", category_controller.DeleteCategory)
	}
}
