package product_controller

import (
	"net/http"

	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/IlyaBatulin/lesopilka/services"
	"github.com/gin-gonic/gin"
)

// GetProducts godoc
// @Summary List products (CMS)
// @Description Paginated product table. category_id includes subcategories; search matches the name
// @Tags CMS - Products
// @Produce json
// @Security BearerAuth
// @Param category_id query int false "Category ID"
// @Param search query string false "Name substring"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.ApiResponse{data=[]models.Product}
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /admin/products [get]
func GetProducts(c *gin.Context) {
	var q services.ProductListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid query parameters"))
		return
	}

	products, meta, err := services.GetProductService().List(c.Request.Context(), q)
	if err != nil {
		writeProductError(c, err, "fetch products")
		return
	}
	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Products fetched", products, meta))
}
