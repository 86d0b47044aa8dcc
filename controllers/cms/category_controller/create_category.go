package category_controller

import (
	"net/http"
	"strconv"

	"github.com/IlyaBatulin/lesopilka/middleware"
	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/IlyaBatulin/lesopilka/services"
	"github.com/gin-gonic/gin"
)

// CreateCategory godoc
// @Summary Create a category
// @Description Creates a root category, or a subcategory when parent_id is set
// @Tags CMS - Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.CategoryRequest true "Category"
// @Success 201 {object} models.ApiResponse{data=models.Category}
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /admin/categories [post]
func CreateCategory(c *gin.Context) {
	// Step 1: Bind body
	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body: "+err.Error()))
		return
	}

	// Step 2: Create
	category, err := services.GetCategoryService().Create(c.Request.Context(), req)
	if err != nil {
		writeCategoryError(c, err, "create category")
		return
	}

	c.Set(middleware.ContextKeyCreatedID, strconv.FormatInt(category.ID, 10))
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Category created", category))
}
