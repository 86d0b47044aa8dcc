package category_controller

import (
	"net/http"

	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/IlyaBatulin/lesopilka/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GetCategories godoc
// @Summary Get category tree
// @Description Root categories with nested subcategories and subtree product counts
// @Tags store
// @Produce json
// @Success 200 {object} models.ApiResponse{data=[]models.CategoryNode}
// @Failure 500 {object} models.ApiResponse
// @Router /store/categories [get]
func GetCategories(c *gin.Context) {
	forest, err := services.GetCategoryService().Forest(c.Request.Context())
	if err != nil {
		logrus.WithField("component", "store.categories").WithError(err).Error("failed to load categories")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch categories"))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Categories fetched", forest))
}
