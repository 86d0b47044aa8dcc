package ecommerce_routes

import (
	"time"

	store_catalog "github.com/IlyaBatulin/lesopilka/controllers/ecommerce/catalog_controller"
	store_category "github.com/IlyaBatulin/lesopilka/controllers/ecommerce/category_controller"
	store_filter "github.com/IlyaBatulin/lesopilka/controllers/ecommerce/filter_controller"
	store_lead "github.com/IlyaBatulin/lesopilka/controllers/ecommerce/lead_controller"
	store_order "github.com/IlyaBatulin/lesopilka/controllers/ecommerce/order_controller"
	store_product "github.com/IlyaBatulin/lesopilka/controllers/ecommerce/product_controller"
	"github.com/IlyaBatulin/lesopilka/middleware"
	"github.com/gin-gonic/gin"
)

func SetupStorefrontRoutes(router *gin.RouterGroup) {
	// Storefront routes (public, no auth required)
	store := router.Group("/store")

	store.GET("/catalog", store_catalog.GetCatalog)
	store.GET("/filters", store_filter.GetFilterMetadata)
	store.PUT("/preferences/view-mode", store_catalog.SetViewMode)

	// Category routes
	categories := store.Group("/categories")
	{
		categories.GET("", store_category.GetCategories)
		categories.GET("/:id", store_category.GetCategoryByID)
	}

	store.GET("/products/:id", store_product.GetStorefrontProductByID)

	// Checkout and contact forms are rate limited
	forms := store.Group("")
	forms.Use(middleware.RateLimiter(20, time.Minute))
	{
		forms.POST("/cart/quote", store_order.QuoteCart)
		forms.POST("/orders", store_order.CreateOrder)
		forms.POST("/leads", store_lead.SubmitLead)
	}
}
