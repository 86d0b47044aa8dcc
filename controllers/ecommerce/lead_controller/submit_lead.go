package lead_controller

import (
	"net/http"

	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/IlyaBatulin/lesopilka/services"
	"github.com/gin-gonic/gin"
)

// SubmitLead godoc
// @Summary Request a call back
// @Description Contact form; forwarded to the shop manager by e-mail
// @Tags store
// @Accept json
// @Produce json
// @Param body body models.LeadRequest true "Contact form"
// @Success 202 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 502 {object} models.ApiResponse "Mail provider error"
// @Router /store/leads [post]
func SubmitLead(c *gin.Context) {
	var req models.LeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid contact form: "+err.Error()))
		return
	}

	if err := services.SubmitLead(c.Request.Context(), req); err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "Failed to send the request, please call us"))
		return
	}
	c.JSON(http.StatusAccepted, models.SuccessResponse(c, "Request received", nil))
}
