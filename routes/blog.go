package routes

import (
	"github.com/gin-gonic/gin"
	blogControllers "github.com/kisinja/smart-farmer/controllers/blog"
	"github.com/kisinja/smart-farmer/middleware"
	"gorm.io/gorm"
)

func SetupBlogRoutes(api *gin.RouterGroup, db *gorm.DB, deps Deps) {
	posts := api.Group("/posts")
	{
		posts.GET("", blogControllers.GetPosts(db))
		posts.GET("/:id", blogControllers.GetPostByID(db))
		posts.POST("", middleware.ValidateToken, blogControllers.CreatePost(db, deps.Kinde))
	}
}
