package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kisinja/smart-farmer/cache"
	"github.com/kisinja/smart-farmer/models"
	"gorm.io/gorm"
)

// POST /api/products/:id/view
// Atomic view-counter bump; no auth so anonymous browsing counts too.
func IncrementProductView(db *gorm.DB, pc *cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("id")

		result := db.Model(&models.Product{}).
			Where("id = ?", productID).
			UpdateColumn("views", gorm.Expr("views + 1"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update view count"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		pc.Invalidate(c.Request.Context(), productID)

		var product models.Product
		if err := db.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}
