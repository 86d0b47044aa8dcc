package routes

import (
	"net/http"
	"time"

	"github.com/IlyaBatulin/lesopilka/config"
	"github.com/IlyaBatulin/lesopilka/middleware"
	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/IlyaBatulin/lesopilka/routes/cms_routes"
	"github.com/IlyaBatulin/lesopilka/routes/ecommerce_routes"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the HTTP engine with the storefront and back-office APIs
// under /api/v1
func NewRouter(cfg config.Config) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.LoggerMiddleware(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.Server.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", "X-Requested-With"},
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, models.SuccessResponse(c, "ok", nil))
	})

	api := router.Group("/api/v1")

	// Register CMS routes (at /api/v1/admin prefix)
	admin := cms_routes.SetupAdminRoutes(api)
	admin.Use(middleware.RateLimiter(cfg.Server.RateLimit, time.Minute))
	cms_routes.SetupCategoryRoutes(admin)
	cms_routes.SetupProductRoutes(admin)
	cms_routes.SetupOrderRoutes(admin)

	// Public storefront
	ecommerce_routes.SetupStorefrontRoutes(api)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Route not found"))
	})
	return router
}
