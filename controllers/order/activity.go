package orderControllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kisinja/smart-farmer/middleware"
	"github.com/kisinja/smart-farmer/models"
	"gorm.io/gorm"
)

const activityFeedLimit = 5

type ActivityEntry struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	CreatedAt   time.Time `json:"createdAt"`
	Type        string    `json:"type"`
}

// activityFromOrder renders one order as a dashboard feed entry.
func activityFromOrder(order models.Order) ActivityEntry {
	productNames := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		if item.Product != nil {
			productNames = append(productNames, item.Product.Title)
		}
	}

	description := "Order update: " + string(order.Status)
	icon := "truck"
	switch order.Status {
	case models.OrderStatusPending:
		description = "New order received for " + strings.Join(productNames, ", ")
		icon = "shopping-cart"
	case models.OrderStatusShipped:
		description = "Order shipped to " + order.ShippingInfo.FullName
	case models.OrderStatusDelivered:
		description = "Order delivered to " + order.ShippingInfo.FullName
		icon = "package"
	}

	shortID := order.ID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}

	return ActivityEntry{
		ID:          order.ID,
		Title:       fmt.Sprintf("Order #%s", shortID),
		Description: description,
		Icon:        icon,
		CreatedAt:   order.CreatedAt,
		Type:        "order",
	}
}

// GET /api/activity
// Derives the seller's dashboard feed from their most recent orders.
func GetActivityHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sellerID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var orders []models.Order
		if err := db.
			Where("seller_id = ?", sellerID).
			Preload("Items.Product").
			Preload("ShippingInfo").
			Order("created_at DESC").
			Limit(activityFeedLimit).
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity data"})
			return
		}

		activities := make([]ActivityEntry, 0, len(orders))
		for _, order := range orders {
			activities = append(activities, activityFromOrder(order))
		}

		c.JSON(http.StatusOK, activities)
	}
}
