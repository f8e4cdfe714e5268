package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kisinja/smart-farmer/cache"
	"github.com/kisinja/smart-farmer/middleware"
	"github.com/kisinja/smart-farmer/models"
	"gorm.io/gorm"
)

// DELETE /api/products/:id
// Scoped to the owning seller; a non-owner's delete matches zero rows
// and reads as not found.
func DeleteProduct(db *gorm.DB, pc *cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		productID := c.Param("id")

		result := db.Where("id = ? AND owner_id = ?", productID, ownerID).
			Delete(&models.Product{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		pc.Invalidate(c.Request.Context(), productID)

		c.JSON(http.StatusOK, gin.H{"message": "Product deleted!"})
	}
}
