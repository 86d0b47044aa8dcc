package admin_auth_controller

import (
	"net/http"

	"github.com/IlyaBatulin/lesopilka/middleware"
	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/gin-gonic/gin"
)

// GetAdminMe godoc
// @Summary Current admin
// @Description Profile of the admin owning the token. The back-office calls it on page load to restore the session.
// @Tags Admin - Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=models.AdminResponse}
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Router /admin/me [get]
func GetAdminMe(c *gin.Context) {
	admin, ok := c.Value(middleware.ContextKeyAdmin).(*models.Admin)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Admin profile retrieved", admin.ToResponse()))
}
