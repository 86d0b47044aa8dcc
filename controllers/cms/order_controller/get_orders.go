package order_controller

import (
	"net/http"

	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/IlyaBatulin/lesopilka/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GetOrders godoc
// @Summary List orders (CMS)
// @Description Newest first. search matches customer name or phone
// @Tags Admin - Orders
// @Produce json
// @Security BearerAuth
// @Param status query string false "Order status"
// @Param search query string false "Customer name or phone"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.ApiResponse{data=[]models.Order}
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /admin/orders [get]
func GetOrders(c *gin.Context) {
	var q models.OrderListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid query parameters"))
		return
	}

	orders, meta, err := services.GetOrderService().List(c.Request.Context(), q)
	if err != nil {
		logrus.WithField("component", "admin.order.list").WithError(err).Error("failed to list orders")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch orders"))
		return
	}
	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Orders fetched", orders, meta))
}
