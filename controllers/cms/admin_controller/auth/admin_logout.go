package admin_auth_controller

import (
	"net/http"

	"github.com/IlyaBatulin/lesopilka/config"
	"github.com/IlyaBatulin/lesopilka/middleware"
	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/IlyaBatulin/lesopilka/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AdminLogout godoc
// @Summary Logout admin
// @Description Logout the current admin and deactivate the session behind the token
// @Tags Admin - Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse
// @Router /admin/logout [post]
func AdminLogout(c *gin.Context) {
	log := logrus.WithField("component", "admin.logout")

	if token := c.GetString("adminToken"); token != "" {
		ctx, cancel := config.WithTimeout()
		defer cancel()

		// Logout still succeeds if the session row could not be updated
		if err := services.GetAdminSessionService().DeactivateSession(ctx, services.HashAdminToken(token)); err != nil {
			log.WithError(err).Warn("failed to deactivate session")
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.AdminTokenCookie,
		"",
		-1,
		"/",
		"",
		config.App.IsProduction(),
		true,
	)
	log.WithField("admin", c.GetString("adminEmail")).Info("logged out")

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Logout successful", nil))
}
