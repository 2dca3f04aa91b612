package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/middleware"
	"storefront/models"
	"storefront/services"
	"storefront/utils"
)

type CartController struct{}

func cartSummary(cart *services.CartService) models.CartSummary {
	lines := cart.Lines()
	views := make([]models.CartLineView, 0, len(lines))
	for _, line := range lines {
		views = append(views, models.CartLineView{
			CartLine:          line,
			FormattedPrice:    utils.FormatPrice(line.Price),
			FormattedSubtotal: utils.FormatBRL(line.Subtotal()),
		})
	}

	total := cart.Total()
	return models.CartSummary{
		Lines:          views,
		Total:          total,
		FormattedTotal: utils.FormatBRL(total),
		LineCount:      len(lines),
		ItemCount:      cart.ItemCount(),
	}
}

// @Summary Get cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=models.CartSummary}
// @Failure 401 {object} models.ErrorResponse
// @Router /store/cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	session := middleware.CurrentSession(c)

	var summary models.CartSummary
	_ = session.Exec(func() error {
		summary = cartSummary(session.Cart)
		return nil
	})

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart retrieved",
		Data:    summary,
	})
}

// @Summary Add product to cart
// @Description Adds one unit; an existing line grows by one up to 99
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response{data=models.CartSummary}
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /store/cart/items/{id} [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	session := middleware.CurrentSession(c)

	var line models.CartLine
	var summary models.CartSummary
	err := session.Exec(func() error {
		var err error
		if line, err = session.Cart.Add(c.Param("id")); err != nil {
			return err
		}
		summary = cartSummary(session.Cart)
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Produto adicionado ao carrinho!"
	if line.Quantity > models.MinQuantity {
		message = "Quantidade atualizada no carrinho!"
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: message,
		Data:    summary,
	})
}

// @Summary Change line quantity
// @Description Applies delta to the line; results outside 1..99 are ignored
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body models.UpdateQuantityRequest true "Quantity delta"
// @Success 200 {object} models.Response{data=models.CartSummary}
// @Failure 400 {object} models.ErrorResponse
// @Router /store/cart/items/{id} [patch]
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	session := middleware.CurrentSession(c)

	var req models.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request",
			Error:   err.Error(),
		})
		return
	}

	var changed bool
	var summary models.CartSummary
	_ = session.Exec(func() error {
		_, changed = session.Cart.UpdateQuantity(c.Param("id"), req.Delta)
		summary = cartSummary(session.Cart)
		return nil
	})

	message := "Quantidade atualizada no carrinho!"
	if !changed {
		message = "Quantidade inalterada."
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: message,
		Data:    summary,
	})
}

// @Summary Remove product from cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response{data=models.CartSummary}
// @Router /store/cart/items/{id} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	session := middleware.CurrentSession(c)

	var removed bool
	var summary models.CartSummary
	_ = session.Exec(func() error {
		removed = session.Cart.Remove(c.Param("id"))
		summary = cartSummary(session.Cart)
		return nil
	})

	message := "Item removido do carrinho."
	if !removed {
		message = "Item não estava no carrinho."
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: message,
		Data:    summary,
	})
}
