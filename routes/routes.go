package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"storefront/controllers"
	"storefront/handler"
)

type Controllers struct {
	Session  *controllers.SessionController
	Product  *controllers.ProductController
	Category *controllers.CategoryController
	Cart     *controllers.CartController
	Order    *controllers.OrderController
}

func SetupRoutes(router *gin.Engine, ctrls *Controllers, sessionAuth gin.HandlerFunc) {
	router.GET("/", handler.Index(router))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	router.POST("/store/session", ctrls.Session.CreateSession)

	store := router.Group("/store")
	store.Use(sessionAuth)
	{
		store.GET("/products", ctrls.Product.GetAllProducts)
		store.GET("/products/:id", ctrls.Product.GetProductByID)
		store.GET("/categories", ctrls.Category.GetCategories)

		store.GET("/cart", ctrls.Cart.GetCart)
		store.POST("/cart/items/:id", ctrls.Cart.AddItem)
		store.PATCH("/cart/items/:id", ctrls.Cart.UpdateItem)
		store.DELETE("/cart/items/:id", ctrls.Cart.RemoveItem)

		store.POST("/checkout", ctrls.Order.Checkout)
	}
}
