package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kisinja/smart-farmer/cache"
	"github.com/kisinja/smart-farmer/middleware"
	"github.com/kisinja/smart-farmer/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type UpdateProductInput struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	ImageURL    *string          `json:"imageUrl"`
	CategoryID  *string          `json:"categoryId"`
}

// PUT /api/products/:id
// Partial update scoped to the owning seller. Negative price or stock
// is rejected, but only for the fields actually present in the request.
func UpdateProduct(db *gorm.DB, pc *cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		productID := c.Param("id")

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.Title != nil {
			updates["title"] = *input.Title
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.Price != nil {
			if input.Price.IsNegative() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Price cannot be negative"})
				return
			}
			updates["price"] = *input.Price
		}
		if input.Stock != nil {
			if *input.Stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Stock cannot be negative"})
				return
			}
			updates["stock"] = *input.Stock
		}
		if input.ImageURL != nil {
			updates["image_url"] = *input.ImageURL
		}
		if input.CategoryID != nil {
			updates["category_id"] = *input.CategoryID
		}

		if len(updates) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No fields provided for update"})
			return
		}

		result := db.Model(&models.Product{}).
			Where("id = ? AND owner_id = ?", productID, ownerID).
			Updates(updates)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		pc.Invalidate(c.Request.Context(), productID)

		var product models.Product
		if err := db.Preload("Category").First(&product, "id = ?", productID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch updated product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
