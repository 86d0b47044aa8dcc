package catalog_controller

import (
	"net/http"

	"github.com/IlyaBatulin/lesopilka/catalog"
	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/IlyaBatulin/lesopilka/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CatalogResponse is the catalog view plus the client's display preference
type CatalogResponse struct {
	catalog.View
	ViewMode string `json:"view_mode"`
}

// GetCatalog godoc
// @Summary Browse the catalog
// @Description Derives the whole catalog view from the query: root categories, subcategories, or the filtered product listing.
// @Description Attribute filters are repeated filter.<key>=<value> parameters.
// @Tags store
// @Produce json
// @Param category query int false "Category ID"
// @Param search query string false "Name or description substring"
// @Param page query int false "Page number" default(1)
// @Param sort query string false "default, price-asc, price-desc, name-asc, name-desc"
// @Success 200 {object} models.ApiResponse{data=CatalogResponse}
// @Router /store/catalog [get]
func GetCatalog(c *gin.Context) {
	params := catalog.ParseParams(c.Request.URL.Query())

	// Fetch failures still render: the engine hands back its empty view
	// with the "nothing found" message
	view, err := services.NewCatalogController().Navigate(c.Request.Context(), params)
	if err != nil {
		logrus.WithField("component", "store.catalog").
			WithError(err).
			WithField("query", params.Encode()).
			Error("catalog navigation failed")
	}

	resp := CatalogResponse{View: view, ViewMode: ReadViewMode(c)}
	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Catalog fetched", resp, view.Pagination))
}
