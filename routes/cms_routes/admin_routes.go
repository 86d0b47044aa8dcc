package cms_routes

import (
	admin_controller "github.com/IlyaBatulin/lesopilka/controllers/cms/admin_controller"
	admin_auth "github.com/IlyaBatulin/lesopilka/controllers/cms/admin_controller/auth"
	"github.com/IlyaBatulin/lesopilka/middleware"
	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes registers login and the authenticated admin group, and
// returns that group for the resource routes
func SetupAdminRoutes(rg *gin.RouterGroup) *gin.RouterGroup {
	// ════════════════════════════════════════════════════════════
	// Base Admin Group
	// ════════════════════════════════════════════════════════════

	admin := rg.Group("/admin")

	// ════════════════════════════════════════════════════════════
	// Public Routes (No Auth Required)
	// ════════════════════════════════════════════════════════════

	admin.POST("/login", admin_auth.AdminLogin)

	// ════════════════════════════════════════════════════════════
	// Protected Routes (Auth Required)
	// ════════════════════════════════════════════════════════════

	protected := admin.Group("")
	protected.Use(middleware.AdminAuthMiddleware())
	{
		// Auth
		protected.POST("/logout", admin_auth.AdminLogout)
		protected.GET("/me", admin_auth.GetAdminMe)
	}

	// ════════════════════════════════════════════════════════════
	// Super Admin Only Routes
	// ════════════════════════════════════════════════════════════

	superAdmin := protected.Group("")
	superAdmin.Use(middleware.RequireSuperAdminMiddleware())
	{
		superAdmin.GET("/activity-logs", admin_controller.GetAllAdminActivityLogs)
	}

	return protected
}
