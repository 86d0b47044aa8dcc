package category_controller

import (
	"net/http"

	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/IlyaBatulin/lesopilka/services"
	"github.com/IlyaBatulin/lesopilka/utils"
	"github.com/gin-gonic/gin"
)

// UpdateCategory godoc
// @Summary Update a category
// @Description Partial update. "parent_id": null moves the category to the root; moving under its own subtree is rejected
// @Tags CMS - Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Param body body models.UpdateCategoryRequest true "Fields to update"
// @Success 200 {object} models.ApiResponse{data=models.Category}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /admin/categories/{id} [patch]
func UpdateCategory(c *gin.Context) {
	// Step 1: Parse category ID
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid category ID"))
		return
	}

	// Step 2: Bind body
	var req models.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body: "+err.Error()))
		return
	}

	// Step 3: Update
	category, err := services.GetCategoryService().Update(c.Request.Context(), id, req)
	if err != nil {
		writeCategoryError(c, err, "update category")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Category updated", category))
}
