package order_controller

import (
	"net/http"
	"strings"

	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// parseOrderID writes a 400 and returns false when :id is not a uuid
func parseOrderID(c *gin.Context) (uuid.UUID, bool) {
	orderID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid order ID"))
		return uuid.Nil, false
	}
	return orderID, true
}
