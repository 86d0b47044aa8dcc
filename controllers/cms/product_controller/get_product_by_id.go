package product_controller

import (
	"net/http"

	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/IlyaBatulin/lesopilka/services"
	"github.com/IlyaBatulin/lesopilka/utils"
	"github.com/gin-gonic/gin"
)

// GetProductByID godoc
// @Summary Get a product by ID (CMS)
// @Tags CMS - Products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} models.ApiResponse{data=models.Product}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /admin/products/{id} [get]
func GetProductByID(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return
	}

	product, err := services.GetProductService().Get(c.Request.Context(), id)
	if err != nil {
		writeProductError(c, err, "fetch product")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product fetched", product))
}
