package product_controller

import (
	"errors"
	"net/http"

	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/IlyaBatulin/lesopilka/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func writeProductError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
	case errors.Is(err, services.ErrCategoryNotFound):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Category not found"))
	default:
		logrus.WithField("component", "admin.product").WithError(err).Error("failed to " + action)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to "+action))
	}
}
