package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/libs"
	"storefront/middleware"
	"storefront/models"
	"storefront/services"
)

type OrderController struct {
	QR *libs.QRRenderer
}

func NewOrderController(qr *libs.QRRenderer) *OrderController {
	return &OrderController{QR: qr}
}

// @Summary Checkout
// @Description Submits the cart to the order backend. Any acknowledged order clears the cart; pix orders also return the QR code to pay with.
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CheckoutRequest true "Customer details"
// @Success 201 {object} models.Response{data=models.CheckoutResult}
// @Failure 422 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /store/checkout [post]
func (ctrl *OrderController) Checkout(c *gin.Context) {
	session := middleware.CurrentSession(c)

	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request",
			Error:   err.Error(),
		})
		return
	}

	var result *models.CheckoutResult
	err := session.Exec(func() error {
		var err error
		result, err = services.Checkout(c.Request.Context(), session.Cart, req.Name, req.Email)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if result.Status == models.CheckoutPaymentPending {
		result.QR = ctrl.QR.Render(result.Payment)
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: result.Message,
		Data:    result,
	})
}
