package category_controller

import (
	"net/http"

	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/IlyaBatulin/lesopilka/services"
	"github.com/IlyaBatulin/lesopilka/utils"
	"github.com/gin-gonic/gin"
)

// DeleteCategory godoc
// @Summary Delete a category
// @Description Deletes the category, all of its subcategories and every product in them
// @Tags CMS - Categories
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} models.ApiResponse{data=services.DeleteResult}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /admin/categories/{id} [delete]
func DeleteCategory(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid category ID"))
		return
	}

	result, err := services.GetCategoryService().Delete(c.Request.Context(), id)
	if err != nil {
		writeCategoryError(c, err, "delete category")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Category deleted", result))
}
