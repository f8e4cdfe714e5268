package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/kisinja/smart-farmer/controllers/cart"
	productcontroller "github.com/kisinja/smart-farmer/controllers/product"
	"github.com/kisinja/smart-farmer/middleware"
	"gorm.io/gorm"
)

// SetupUserRoutes registers the "/api/user/*" endpoints. All require a
// valid bearer token.
func SetupUserRoutes(api *gin.RouterGroup, db *gorm.DB) {
	user := api.Group("/user")
	user.Use(middleware.ValidateToken)
	{
		cart := user.Group("/cart")
		{
			cart.GET("", cartControllers.GetUserCart(db))
			cart.POST("", cartControllers.AddCartItem(db))
			cart.PATCH("", cartControllers.SetCartItemQuantity(db))
			cart.DELETE("", cartControllers.RemoveCartItem(db))
		}

		user.GET("/products", productcontroller.GetMyProducts(db))
		user.GET("/products/export", productcontroller.ExportMyProductsToExcel(db))
	}
}
