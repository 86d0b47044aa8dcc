package catalog_controller

import (
	"net/http"

	"github.com/IlyaBatulin/lesopilka/config"
	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/gin-gonic/gin"
)

const viewModeMaxAge = 365 * 24 * 60 * 60

// ReadViewMode returns the stored grid/list preference, grid by default
func ReadViewMode(c *gin.Context) string {
	mode, err := c.Cookie(models.ViewModeCookie)
	if err != nil || (mode != models.ViewModeGrid && mode != models.ViewModeList) {
		return models.ViewModeGrid
	}
	return mode
}

// SetViewMode godoc
// @Summary Save catalog view mode
// @Description Persists the grid/list preference in a cookie. It never affects filtering
// @Tags store
// @Accept json
// @Produce json
// @Param body body models.ViewModeRequest true "grid or list"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Router /store/preferences/view-mode [put]
func SetViewMode(c *gin.Context) {
	var req models.ViewModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "View mode must be grid or list"))
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(models.ViewModeCookie, req.Mode, viewModeMaxAge, "/", "", config.App.IsProduction(), false)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "View mode saved", gin.H{"view_mode": req.Mode}))
}
