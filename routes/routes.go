package routes

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/kisinja/smart-farmer/auth"
	"github.com/kisinja/smart-farmer/cache"
	uploadController "github.com/kisinja/smart-farmer/controllers/upload"
	webhookControllers "github.com/kisinja/smart-farmer/controllers/webhook"
	"github.com/kisinja/smart-farmer/events"
	"github.com/kisinja/smart-farmer/middleware"
	"gorm.io/gorm"
)

// Deps carries the optional infrastructure handed to handlers. Nil
// fields disable the corresponding integration.
type Deps struct {
	Kinde  *auth.Client
	Cache  *cache.ProductCache
	Events *events.Publisher
}

// SetupRoutes is the single entry-point that wires every /api endpoint.
func SetupRoutes(r *gin.Engine, db *gorm.DB, deps Deps) {
	api := r.Group("/api")

	SetupProductRoutes(api, db, deps)
	SetupCategoryRoutes(api, db)
	SetupOrderRoutes(api, db, deps)
	SetupUserRoutes(api, db)
	SetupBlogRoutes(api, db, deps)

	// Inbound identity-provider events (JWT-signature verified).
	api.POST("/kinde-webhook", webhookControllers.KindeWebhookHandler(db))

	// Image uploads for product and category pictures.
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	publicBaseURL := os.Getenv("PUBLIC_BASE_URL")
	if publicBaseURL == "" {
		publicBaseURL = "http://localhost:8080"
	}
	api.POST("/uploads", middleware.ValidateToken, uploadController.HandleImageUpload(uploadDir, publicBaseURL))
	r.Static("/uploads", uploadDir)
}
