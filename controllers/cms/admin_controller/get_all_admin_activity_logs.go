package admin_controller

import (
	"net/http"

	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/IlyaBatulin/lesopilka/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GetAllAdminActivityLogs godoc
// @Summary Get activity logs
// @Description Audit trail of back-office writes, newest first
// @Tags Admin - Activity Logs
// @Produce json
// @Security BearerAuth
// @Param resource_type query string false "product, category or order"
// @Param action query string false "e.g. deleted_category"
// @Param status query string false "success or failed"
// @Param admin_id query string false "Admin ID (UUID)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.ApiResponse{data=[]models.ActivityLog}
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /admin/activity-logs [get]
func GetAllAdminActivityLogs(c *gin.Context) {
	var q models.ActivityLogQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid query parameters"))
		return
	}

	logs, meta, err := services.GetActivityLogService().ListActivityLogs(q)
	if err != nil {
		logrus.WithField("component", "admin.activity").WithError(err).Error("failed to list activity logs")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch activity logs"))
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Activity logs fetched", logs, meta))
}
