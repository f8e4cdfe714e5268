package routes

import (
	"github.com/gin-gonic/gin"
	productcontroller "github.com/kisinja/smart-farmer/controllers/product"
	"github.com/kisinja/smart-farmer/middleware"
	"gorm.io/gorm"
)

// SetupProductRoutes registers the public catalogue plus the
// owner-scoped mutations.
func SetupProductRoutes(api *gin.RouterGroup, db *gorm.DB, deps Deps) {
	products := api.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(db))
		products.GET("/:id", productcontroller.GetProductByID(db, deps.Kinde, deps.Cache))
		products.POST("/:id/view", productcontroller.IncrementProductView(db, deps.Cache))

		products.POST("", middleware.ValidateToken, productcontroller.CreateProduct(db))
		products.PUT("/:id", middleware.ValidateToken, productcontroller.UpdateProduct(db, deps.Cache))
		products.DELETE("/:id", middleware.ValidateToken, productcontroller.DeleteProduct(db, deps.Cache))
	}
}
