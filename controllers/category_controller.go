package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/middleware"
	"storefront/models"
)

type CategoryController struct{}

// @Summary Get all categories
// @Description Distinct category labels of the session catalog, in catalog order
// @Tags Catalog
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=[]models.Category}
// @Failure 401 {object} models.ErrorResponse
// @Router /store/categories [get]
func (ctrl *CategoryController) GetCategories(c *gin.Context) {
	session := middleware.CurrentSession(c)

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Categories retrieved",
		Data:    session.Catalog.Categories(),
	})
}
