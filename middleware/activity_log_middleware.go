package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/IlyaBatulin/lesopilka/config"
	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/IlyaBatulin/lesopilka/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ContextKeyCreatedID lets create handlers report the new resource id, which
// is not part of the URL
const ContextKeyCreatedID = "activityCreatedID"

// ════════════════════════════════════════════════════════════
// Configuration Maps
// ════════════════════════════════════════════════════════════

// pathToResourceType maps URL paths to resource types
var pathToResourceType = map[string]string{
	"categories": models.ResourceTypeCategory,
	"products":   models.ResourceTypeProduct,
	"orders":     models.ResourceTypeOrder,
}

// methodToActionVerb maps HTTP methods to action verbs
var methodToActionVerb = map[string]string{
	http.MethodPost:   "created",
	http.MethodPatch:  "updated",
	http.MethodPut:    "updated",
	http.MethodDelete: "deleted",
}

// ════════════════════════════════════════════════════════════
// Activity Logging Middleware
// ════════════════════════════════════════════════════════════

// ActivityLoggingMiddleware records every admin write with before/after
// snapshots. Must be used AFTER AdminAuthMiddleware.
func ActivityLoggingMiddleware() gin.HandlerFunc {
	log := logrus.WithField("component", "activity-logging")

	return func(c *gin.Context) {
		actionVerb := methodToActionVerb[c.Request.Method]
		if actionVerb == "" {
			c.Next()
			return
		}

		adminID, _ := c.Get("adminID")
		id, ok := adminID.(uuid.UUID)
		if !ok {
			log.Warn("admin info not in context")
			c.Next()
			return
		}
		adminEmail := c.GetString("adminEmail")

		resourceType := extractResourceType(c.Request.URL.Path)
		if resourceType == "" {
			log.WithField("path", c.Request.URL.Path).Debug("could not determine resource type")
			c.Next()
			return
		}

		action := models.ActivityAction(actionVerb, resourceType)
		resourceID := c.Param("id")

		// "before" exists only for updates and deletes
		var before models.Audited
		if c.Request.Method != http.MethodPost && resourceID != "" {
			before = loadAudited(resourceType, resourceID)
		}

		c.Next()

		statusCode := c.Writer.Status()
		entry := services.LogActivityRequest{
			AdminID:      id,
			AdminEmail:   adminEmail,
			Action:       action,
			ResourceType: resourceType,
			ResourceID:   resourceID,
			ResourceName: auditName(before),
			Context:      c,
		}

		if statusCode >= 200 && statusCode < 300 {
			if created := c.GetString(ContextKeyCreatedID); created != "" {
				entry.ResourceID = created
			}
			var after models.Audited
			if c.Request.Method != http.MethodDelete && entry.ResourceID != "" {
				after = loadAudited(resourceType, entry.ResourceID)
				if name := auditName(after); name != "" {
					entry.ResourceName = name
				}
			}
			entry.Changes = services.CreateChanges(before, after)
			entry.Status = models.StatusSuccess
		} else {
			entry.Status = models.StatusFailed
			entry.ErrorMessage = "Request failed with status " + http.StatusText(statusCode)
		}

		services.LogActivity(entry)
	}
}

// ════════════════════════════════════════════════════════════
// Helper Functions
// ════════════════════════════════════════════════════════════

// extractResourceType extracts resource type from URL path
// e.g., "/api/v1/admin/categories/123" → "category"
func extractResourceType(path string) string {
	parts := strings.Split(path, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if isIDParam(parts[i]) {
			continue
		}
		if resourceType, exists := pathToResourceType[parts[i]]; exists {
			return resourceType
		}
	}
	return ""
}

// isIDParam checks if a path segment is a numeric or uuid id
func isIDParam(segment string) bool {
	if segment == ":id" || segment == "" {
		return true
	}
	if _, err := strconv.ParseInt(segment, 10, 64); err == nil {
		return true
	}
	_, err := uuid.Parse(segment)
	return err == nil
}

// loadAudited reads the current row; nil when it does not exist
func loadAudited(resourceType, resourceID string) models.Audited {
	var target models.Audited
	switch resourceType {
	case models.ResourceTypeProduct:
		target = &models.Product{}
	case models.ResourceTypeCategory:
		target = &models.Category{}
	case models.ResourceTypeOrder:
		target = &models.Order{}
	default:
		return nil
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	if err := config.DB.WithContext(ctx).First(target, "id = ?", resourceID).Error; err != nil {
		logrus.WithFields(logrus.Fields{
			"component":     "activity-logging",
			"resource_type": resourceType,
			"resource_id":   resourceID,
		}).WithError(err).Debug("resource not loaded")
		return nil
	}
	return target
}

func auditName(obj models.Audited) string {
	if obj == nil {
		return ""
	}
	return obj.AuditName()
}
