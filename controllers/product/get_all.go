package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kisinja/smart-farmer/middleware"
	"github.com/kisinja/smart-farmer/models"
	"gorm.io/gorm"
)

// GET /api/products
// Public catalogue listing with optional search and category filters.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Product{}).Preload("Category")

		if search := c.Query("search"); search != "" {
			likePattern := "%" + search + "%"
			query = query.Where("title LIKE ? OR description LIKE ?", likePattern, likePattern)
		}
		if categoryID := c.Query("category_id"); categoryID != "" {
			query = query.Where("category_id = ?", categoryID)
		}

		var products []models.Product
		if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

// GET /api/user/products
// The caller's own listings, newest first.
func GetMyProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var products []models.Product
		if err := db.
			Where("owner_id = ?", ownerID).
			Order("created_at DESC").
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user products"})
			return
		}

		c.JSON(http.StatusOK, products)
	}
}
