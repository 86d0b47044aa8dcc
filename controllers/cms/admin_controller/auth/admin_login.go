package admin_auth_controller

import (
	"errors"
	"net/http"

	"github.com/IlyaBatulin/lesopilka/config"
	"github.com/IlyaBatulin/lesopilka/middleware"
	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/IlyaBatulin/lesopilka/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AdminLogin godoc
// @Summary Login as admin
// @Description Authenticate admin with email and password. Returns JWT token and creates session
// @Tags Admin - Auth
// @Accept json
// @Produce json
// @Param loginRequest body models.AdminLoginRequest true "Email and password"
// @Success 200 {object} models.ApiResponse{data=models.AdminLoginResponse}
// @Failure 400 {object} models.ApiResponse "Invalid credentials"
// @Failure 403 {object} models.ApiResponse "Account suspended"
// @Failure 500 {object} models.ApiResponse "Server error"
// @Router /admin/login [post]
func AdminLogin(c *gin.Context) {
	log := logrus.WithField("component", "admin.login")

	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// Step 1: Check credentials
	admin, err := services.GetAdminAuthService().Authenticate(ctx, req.Email, req.Password)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		log.WithField("email", req.Email).Info("invalid credentials")
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid email or password"))
		return
	case errors.Is(err, services.ErrAdminSuspended):
		log.WithField("email", req.Email).Warn("suspended account attempt")
		c.JSON(http.StatusForbidden, models.ErrorResponse(c, "Account is suspended"))
		return
	case err != nil:
		log.WithError(err).Error("authentication failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Server error"))
		return
	}

	// Step 2: Generate JWT token
	jwtService := services.GetJWTService()
	token, err := jwtService.GenerateAdminJWT(admin)
	if err != nil {
		log.WithError(err).Error("failed to generate token")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Server error"))
		return
	}

	// Step 3: Create session
	if _, err := services.GetAdminSessionService().CreateSession(
		ctx,
		admin.ID,
		token,
		c.ClientIP(),
		c.Request.UserAgent(),
		jwtService.TTL(),
	); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Server error"))
		return
	}

	// Step 4: Set token in HTTP cookie
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.AdminTokenCookie,
		token,
		int(jwtService.TTL().Seconds()),
		"/",
		"",
		config.App.IsProduction(),
		true,
	)

	log.WithField("admin_id", admin.ID).Info("login successful")

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Login successful", models.AdminLoginResponse{
		Admin: admin.ToResponse(),
		Token: token,
	}))
}
