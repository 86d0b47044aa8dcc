package order_controller

import (
	"errors"
	"net/http"

	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/IlyaBatulin/lesopilka/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UpdateOrderStatusResponse reports the transition that was applied
type UpdateOrderStatusResponse struct {
	ID             string `json:"id"`
	PreviousStatus string `json:"previous_status"`
	Status         string `json:"status"`
}

// UpdateOrderStatus godoc
// @Summary Update order status (CMS)
// @Description Sets one of new, processing, shipped, delivered, cancelled
// @Tags Admin - Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID (UUID)"
// @Param payload body models.UpdateOrderStatusRequest true "Update payload"
// @Success 200 {object} models.ApiResponse{data=UpdateOrderStatusResponse}
// @Failure 400 {object} models.ApiResponse "Bad request"
// @Failure 404 {object} models.ApiResponse "Order not found"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /admin/orders/{id}/status [patch]
func UpdateOrderStatus(c *gin.Context) {
	log := logrus.WithField("component", "admin.order.update")

	// Step 1: Parse order ID
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	// Step 2: Bind body
	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid order status"))
		return
	}

	// Step 3: Apply
	before, order, err := services.GetOrderService().UpdateStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Order not found"))
			return
		}
		log.WithError(err).WithField("order_id", orderID).Error("failed to update status")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update order status"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Order status updated", UpdateOrderStatusResponse{
		ID:             order.ID.String(),
		PreviousStatus: before,
		Status:         order.Status,
	}))
}
