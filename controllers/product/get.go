package productcontroller

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kisinja/smart-farmer/auth"
	"github.com/kisinja/smart-farmer/cache"
	"github.com/kisinja/smart-farmer/models"
	"gorm.io/gorm"
)

type productOwner struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

// resolveOwner fetches the seller's public profile, preferring the
// webhook-synced local snapshot over a management API round trip.
func resolveOwner(c *gin.Context, db *gorm.DB, kinde *auth.Client, ownerID string) productOwner {
	var user models.User
	if err := db.First(&user, "id = ?", ownerID).Error; err == nil {
		return productOwner{Name: user.Name, ImageURL: user.Picture}
	}

	if kinde != nil {
		if profile, err := kinde.GetUser(c.Request.Context(), ownerID); err == nil {
			return productOwner{Name: profile.DisplayName(), ImageURL: profile.Picture}
		} else {
			log.Printf("⚠️ Failed to fetch owner %s from Kinde: %v", ownerID, err)
		}
	}

	return productOwner{Name: "Unknown Seller"}
}

// GET /api/products/:id
func GetProductByID(db *gorm.DB, kinde *auth.Client, pc *cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("id")

		product, hit := pc.Get(c.Request.Context(), productID)
		if !hit {
			var fetched models.Product
			if err := db.Preload("Category").First(&fetched, "id = ?", productID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
				return
			}
			product = &fetched
			pc.Set(c.Request.Context(), product)
		}

		c.JSON(http.StatusOK, gin.H{
			"product": product,
			"owner":   resolveOwner(c, db, kinde, product.OwnerID),
		})
	}
}
