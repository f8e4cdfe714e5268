package routes

import (
	"github.com/gin-gonic/gin"
	categoryControllers "github.com/kisinja/smart-farmer/controllers/category"
	"gorm.io/gorm"
)

func SetupCategoryRoutes(api *gin.RouterGroup, db *gorm.DB) {
	categories := api.Group("/categories")
	{
		categories.GET("", categoryControllers.GetAllCategories(db))
		categories.GET("/:id", categoryControllers.GetCategoryByID(db))
		categories.POST("", categoryControllers.CreateCategory(db))
	}
}
