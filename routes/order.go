package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/kisinja/smart-farmer/controllers/order"
	"github.com/kisinja/smart-farmer/middleware"
	"gorm.io/gorm"
)

func SetupOrderRoutes(api *gin.RouterGroup, db *gorm.DB, deps Deps) {
	orders := api.Group("/orders")
	{
		// websocket endpoint for real-time order updates
		orders.GET("/ws", orderControllers.OrderWebSocketHandler)

		orders.Use(middleware.ValidateToken)

		// cart checkout: one order per seller represented in the cart
		orders.POST("", orderControllers.PlaceOrderHandler(db, deps.Events))

		// orders owned (as seller) by the current user
		orders.GET("/seller", orderControllers.GetSellerOrdersHandler(db))

		orders.GET("/:id", orderControllers.GetOrderByIDHandler(db))
		orders.PATCH("/:id", orderControllers.UpdateOrderStatusHandler(db))
	}

	api.GET("/activity", middleware.ValidateToken, orderControllers.GetActivityHandler(db))
}
