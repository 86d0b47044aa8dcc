package middleware

import (
	"net/http"
	"strings"

	"github.com/IlyaBatulin/lesopilka/config"
	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/IlyaBatulin/lesopilka/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AdminTokenCookie carries the admin JWT for browser sessions
const AdminTokenCookie = "admin_token"

// ContextKeyAdmin holds the authenticated *models.Admin
const ContextKeyAdmin = "admin"

// adminToken reads the cookie first, then an "Authorization: Bearer" header
func adminToken(c *gin.Context) string {
	if token, err := c.Cookie(AdminTokenCookie); err == nil && token != "" {
		return token
	}
	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// AdminAuthMiddleware validates the admin JWT and its server-side session
func AdminAuthMiddleware() gin.HandlerFunc {
	log := logrus.WithField("component", "auth")

	return func(c *gin.Context) {
		token := adminToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized - no token provided"))
			return
		}

		claims, err := services.VerifyAdminJWT(token)
		if err != nil {
			log.WithError(err).Debug("invalid token")
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized - invalid token"))
			c.Abort()
			return
		}

		ctx, cancel := config.WithTimeout()
		defer cancel()

		// A logged out or expired session revokes the token
		active, err := services.GetAdminSessionService().TouchSession(ctx, services.HashAdminToken(token))
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to verify session"))
			c.Abort()
			return
		}
		if !active {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized - session expired"))
			c.Abort()
			return
		}

		admin, err := services.GetAdminAuthService().GetAdmin(ctx, claims.Subject)
		if err != nil {
			log.WithError(err).WithField("admin_id", claims.Subject).Warn("failed to fetch admin")
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized - admin not found"))
			c.Abort()
			return
		}
		if admin.Status == models.AdminStatusSuspended {
			c.JSON(http.StatusForbidden, models.ErrorResponse(c, "Admin account is suspended"))
			c.Abort()
			return
		}

		c.Set(ContextKeyAdmin, admin)
		c.Set("adminID", admin.ID)
		c.Set("adminEmail", admin.Email)
		c.Set("adminRole", admin.Role)
		c.Set("adminToken", token)

		c.Next()
	}
}

// RequireSuperAdminMiddleware checks if the admin is a super admin
func RequireSuperAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		adminRole, exists := c.Get("adminRole")
		if !exists {
			c.JSON(http.StatusForbidden, models.ErrorResponse(c, "Forbidden - role not found"))
			c.Abort()
			return
		}

		if adminRole != models.AdminRoleSuperAdmin {
			logrus.WithField("component", "auth").Warn("non-super-admin attempted restricted action")
			c.JSON(http.StatusForbidden, models.ErrorResponse(c, "Forbidden - super admin access required"))
			c.Abort()
			return
		}

		c.Next()
	}
}
