package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/middleware"
	"storefront/models"
	"storefront/utils"
)

type ProductController struct{}

func productView(p models.Product) models.ProductView {
	return models.ProductView{
		Product:        p,
		FormattedPrice: utils.FormatPrice(p.Price),
	}
}

// @Summary Get all products
// @Description Products of the session catalog in load order, optionally filtered by category
// @Tags Catalog
// @Security BearerAuth
// @Produce json
// @Param category query string false "Category label, or all"
// @Success 200 {object} models.Response{data=[]models.ProductView}
// @Failure 401 {object} models.ErrorResponse
// @Router /store/products [get]
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	session := middleware.CurrentSession(c)
	category := strings.TrimSpace(c.DefaultQuery("category", models.CategoryAll))

	products := session.Catalog.List(category)
	views := make([]models.ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, productView(p))
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Products retrieved",
		Data:    views,
	})
}

// @Summary Get product by ID
// @Tags Catalog
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response{data=models.ProductView}
// @Failure 404 {object} models.ErrorResponse
// @Router /store/products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	session := middleware.CurrentSession(c)

	product, err := session.Catalog.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Product retrieved",
		Data:    productView(product),
	})
}
