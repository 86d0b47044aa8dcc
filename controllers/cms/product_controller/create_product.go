package product_controller

import (
	"net/http"
	"strconv"

	"github.com/IlyaBatulin/lesopilka/middleware"
	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/IlyaBatulin/lesopilka/services"
	"github.com/gin-gonic/gin"
)

// CreateProduct godoc
// @Summary Create a product
// @Description Price 0 marks "price on request". Characteristics is a free-form object of string or number values
// @Tags CMS - Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.ProductRequest true "Product"
// @Success 201 {object} models.ApiResponse{data=models.Product}
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /admin/products [post]
func CreateProduct(c *gin.Context) {
	// Step 1: Bind body
	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body: "+err.Error()))
		return
	}

	// Step 2: Create
	product, err := services.GetProductService().Create(c.Request.Context(), req)
	if err != nil {
		writeProductError(c, err, "create product")
		return
	}

	c.Set(middleware.ContextKeyCreatedID, strconv.FormatInt(product.ID, 10))
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Product created", product))
}
