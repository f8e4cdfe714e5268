package orderControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kisinja/smart-farmer/middleware"
	"github.com/kisinja/smart-farmer/models"
	"gorm.io/gorm"
)

// GET /api/orders/seller
func GetSellerOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sellerID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var orders []models.Order
		if err := db.
			Where("seller_id = ?", sellerID).
			Preload("ShippingInfo").
			Preload("Items.Product").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch seller orders"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
	}
}
