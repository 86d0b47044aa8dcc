package category_controller

import (
	"errors"
	"net/http"

	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/IlyaBatulin/lesopilka/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// writeCategoryError maps service errors onto status codes
func writeCategoryError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Category not found"))
	case errors.Is(err, services.ErrParentNotFound):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Parent category not found"))
	case errors.Is(err, services.ErrCategoryCycle):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "A category cannot be moved under itself or its subcategories"))
	default:
		logrus.WithField("component", "admin.category").WithError(err).Error("failed to " + action)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to "+action))
	}
}
