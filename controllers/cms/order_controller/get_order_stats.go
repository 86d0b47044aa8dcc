package order_controller

import (
	"net/http"

	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/IlyaBatulin/lesopilka/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GetOrderStats godoc
// @Summary Get order stats (CMS)
// @Description All-time order count, per-status breakdown and revenue of non-cancelled orders
// @Tags Admin - Orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=models.OrderStats}
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /admin/orders/stats [get]
func GetOrderStats(c *gin.Context) {
	stats, err := services.GetOrderService().Stats(c.Request.Context())
	if err != nil {
		logrus.WithField("component", "admin.order.stats").WithError(err).Error("failed to compute stats")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch order stats"))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Order stats fetched", stats))
}
