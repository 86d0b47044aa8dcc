package order_controller

import (
	"errors"
	"net/http"

	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/IlyaBatulin/lesopilka/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// QuoteCart godoc
// @Summary Price the cart
// @Description Validates cart lines against the catalog and returns total items and total price. Price-on-request products add 0
// @Tags store
// @Accept json
// @Produce json
// @Param body body models.CartQuoteRequest true "Cart lines"
// @Success 200 {object} models.ApiResponse{data=models.CartQuote}
// @Failure 400 {object} models.ApiResponse
// @Failure 422 {object} models.ApiResponse "Unknown products"
// @Router /store/cart/quote [post]
func QuoteCart(c *gin.Context) {
	var req models.CartQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid cart"))
		return
	}

	quote, err := services.GetOrderService().QuoteCart(c.Request.Context(), req.Items)
	if err != nil {
		writeCartError(c, err, "quote cart")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Cart priced", quote))
}

func writeCartError(c *gin.Context, err error, action string) {
	var missing *services.MissingProductsError
	if errors.As(err, &missing) {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse(c, missing.Error()))
		return
	}
	logrus.WithField("component", "store.cart").WithError(err).Error("failed to " + action)
	c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to "+action))
}
