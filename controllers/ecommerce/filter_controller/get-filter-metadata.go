package filter_controller

import (
	"net/http"
	"strconv"

	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/IlyaBatulin/lesopilka/services"
	"github.com/gin-gonic/gin"
)

// GetFilterMetadata godoc
// @Summary Get filter metadata
// @Description Facets, availability counts and price range for the subtree of ?category (whole catalog when absent or unknown)
// @Tags store
// @Produce json
// @Param category query int false "Category ID"
// @Success 200 {object} models.ApiResponse{data=models.FilterMetadata}
// @Failure 500 {object} models.ApiResponse
// @Router /store/filters [get]
func GetFilterMetadata(c *gin.Context) {
	var categoryID *int64
	if raw := c.Query("category"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			categoryID = &id
		}
	}

	metadata, err := services.GetFilterService().Metadata(c.Request.Context(), categoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch filter metadata"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Filter metadata fetched", metadata))
}
