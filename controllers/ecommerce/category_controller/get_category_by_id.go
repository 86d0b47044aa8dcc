package category_controller

import (
	"errors"
	"net/http"

	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/IlyaBatulin/lesopilka/services"
	"github.com/IlyaBatulin/lesopilka/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GetCategoryByID godoc
// @Summary Get a category
// @Description Category with its direct subcategories and breadcrumb path
// @Tags store
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.ApiResponse{data=models.CategoryDetail}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /store/categories/{id} [get]
func GetCategoryByID(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid category ID"))
		return
	}

	detail, err := services.GetCategoryService().Detail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Category not found"))
			return
		}
		logrus.WithField("component", "store.categories").WithError(err).Error("failed to load category")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch category"))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Category fetched", detail))
}
