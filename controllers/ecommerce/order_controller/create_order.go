package order_controller

import (
	"net/http"

	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/IlyaBatulin/lesopilka/services"
	"github.com/gin-gonic/gin"
)

// CreateOrder godoc
// @Summary Place an order
// @Description Guest checkout. Prices are taken from the catalog, not the client; the shop manager is notified by e-mail
// @Tags store
// @Accept json
// @Produce json
// @Param body body models.CreateOrderRequest true "Checkout form"
// @Success 201 {object} models.ApiResponse{data=models.Order}
// @Failure 400 {object} models.ApiResponse
// @Failure 422 {object} models.ApiResponse "Unknown products"
// @Failure 500 {object} models.ApiResponse
// @Router /store/orders [post]
func CreateOrder(c *gin.Context) {
	// Step 1: Validate checkout form
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid order: "+err.Error()))
		return
	}

	// Step 2: Create order and items
	order, err := services.GetOrderService().CreateOrder(c.Request.Context(), req)
	if err != nil {
		writeCartError(c, err, "create order")
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Order placed", order))
}
