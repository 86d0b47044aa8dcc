package category_controller

import (
	"net/http"

	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/IlyaBatulin/lesopilka/services"
	"github.com/IlyaBatulin/lesopilka/utils"
	"github.com/gin-gonic/gin"
)

// GetCategoryByID godoc
// @Summary Get a category by ID (CMS)
// @Tags CMS - Categories
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} models.ApiResponse{data=models.CategoryDetail}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /admin/categories/{id} [get]
func GetCategoryByID(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid category ID"))
		return
	}

	detail, err := services.GetCategoryService().Detail(c.Request.Context(), id)
	if err != nil {
		writeCategoryError(c, err, "fetch category")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Category fetched", detail))
}
