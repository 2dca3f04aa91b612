package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/models"
	"storefront/services"
)

// respondError maps service errors to a status code and a message the
// widget can show as is.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Erro inesperado. Tente novamente mais tarde."

	var rejected *services.OrderRejectedError
	switch {
	case errors.As(err, &rejected):
		status = http.StatusBadGateway
		message = rejected.Message
	case errors.Is(err, services.ErrProductNotFound):
		status = http.StatusNotFound
		message = "Produto não encontrado."
	case errors.Is(err, services.ErrProductUnavailable):
		status = http.StatusUnprocessableEntity
		message = "Produto indisponível no momento."
	case errors.Is(err, services.ErrQuantityLimitExceeded):
		status = http.StatusUnprocessableEntity
		message = "Limite de 99 itens atingido."
	case errors.Is(err, services.ErrEmptyCart):
		status = http.StatusUnprocessableEntity
		message = "Adicione um produto ao carrinho antes de finalizar."
	case errors.Is(err, services.ErrCustomerDetailsRequired):
		status = http.StatusUnprocessableEntity
		message = "Preencha seu nome e e-mail para receber o produto."
	}

	_ = c.Error(err)
	c.JSON(status, models.ErrorResponse{
		Success: false,
		Message: message,
		Error:   err.Error(),
	})
}
