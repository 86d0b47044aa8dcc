package category_controller

import (
	"net/http"

	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/IlyaBatulin/lesopilka/services"
	"github.com/gin-gonic/gin"
)

// GetCategories godoc
// @Summary Get categories (CMS)
// @Description Without search returns the category tree with product counts; with search returns the flat list of matching categories
// @Tags CMS - Categories
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name substring"
// @Success 200 {object} models.ApiResponse{data=[]models.CategoryNode}
// @Failure 500 {object} models.ApiResponse
// @Router /admin/categories [get]
func GetCategories(c *gin.Context) {
	svc := services.GetCategoryService()

	if search := c.Query("search"); search != "" {
		categories, err := svc.List(c.Request.Context(), search)
		if err != nil {
			writeCategoryError(c, err, "fetch categories")
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(c, "Categories fetched", categories))
		return
	}

	forest, err := svc.Forest(c.Request.Context())
	if err != nil {
		writeCategoryError(c, err, "fetch categories")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Categories fetched", forest))
}
