package orderControllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kisinja/smart-farmer/events"
	"github.com/kisinja/smart-farmer/middleware"
	"github.com/kisinja/smart-farmer/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FlatShippingFee is charged once per seller order created at checkout.
var FlatShippingFee = decimal.NewFromInt(200)

// -------- Request Structs --------

type CheckoutItem struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type ShippingInfoInput struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Country  string `json:"country"`
}

type PlaceOrderRequest struct {
	Items            []CheckoutItem    `json:"orderItems" binding:"required,min=1,dive"`
	ShippingInfo     ShippingInfoInput `json:"shippingInfo" binding:"required"`
	PaymentMethod    string            `json:"paymentMethod" binding:"required"`
	PaymentReference string            `json:"paymentReference"`
}

type UpdateOrderStatusRequest struct {
	Status         string `json:"status" binding:"required"`
	TrackingNumber string `json:"trackingNumber"`
}

// CreatedOrder is one element of the checkout response, one per seller.
type CreatedOrder struct {
	ID       string          `json:"id"`
	SellerID string          `json:"sellerId"`
	Amount   decimal.Decimal `json:"amount"`
}

// ProductsNotFoundError reports exactly which requested product ids do
// not exist, so the client can prune its cart.
type ProductsNotFoundError struct {
	IDs []string
}

func (e *ProductsNotFoundError) Error() string {
	return "Products not found: " + strings.Join(e.IDs, ", ")
}

// -------- Helpers --------

// mapOrderStatus validates a client-supplied status string.
func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToUpper(status) {
	case string(models.OrderStatusPending):
		return models.OrderStatusPending, nil
	case string(models.OrderStatusShipped):
		return models.OrderStatusShipped, nil
	case string(models.OrderStatusDelivered):
		return models.OrderStatusDelivered, nil
	case string(models.OrderStatusCancelled):
		return models.OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

// groupBySeller partitions checkout items by the owning seller of each
// referenced product.
func groupBySeller(items []CheckoutItem, products map[string]models.Product) map[string][]CheckoutItem {
	groups := make(map[string][]CheckoutItem)
	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok {
			continue
		}
		groups[product.OwnerID] = append(groups[product.OwnerID], item)
	}
	return groups
}

// sellerTotal computes Σ(price × quantity) for one seller group plus
// the flat shipping fee, charged once per seller order.
func sellerTotal(items []CheckoutItem, products map[string]models.Product) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		product := products[item.ProductID]
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total.Add(FlatShippingFee)
}

// -------- Core Logic --------

// PlaceOrders splits a checkout into one order per seller. The whole
// operation runs in a single transaction: either every seller order is
// created and the ordered items leave the buyer's cart, or nothing is.
func PlaceOrders(db *gorm.DB, buyerID string, req PlaceOrderRequest) ([]CreatedOrder, error) {
	productIDs := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		productIDs = append(productIDs, item.ProductID)
	}

	var products []models.Product
	if err := db.Where("id IN ?", productIDs).Find(&products).Error; err != nil {
		return nil, err
	}

	productsByID := make(map[string]models.Product, len(products))
	for _, p := range products {
		productsByID[p.ID] = p
	}

	var missing []string
	for _, id := range productIDs {
		if _, ok := productsByID[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, &ProductsNotFoundError{IDs: missing}
	}

	groups := groupBySeller(req.Items, productsByID)

	var created []CreatedOrder
	err := db.Transaction(func(tx *gorm.DB) error {
		for sellerID, sellerItems := range groups {
			orderItems := make([]models.OrderItem, 0, len(sellerItems))
			for _, item := range sellerItems {
				orderItems = append(orderItems, models.OrderItem{
					ProductID: item.ProductID,
					Quantity:  item.Quantity,
				})
			}

			order := models.Order{
				BuyerID:          buyerID,
				SellerID:         sellerID,
				Status:           models.OrderStatusPending,
				TotalAmount:      sellerTotal(sellerItems, productsByID),
				PaymentMethod:    req.PaymentMethod,
				PaymentReference: req.PaymentReference,
				ShippingInfo: models.ShippingInfo{
					FullName: req.ShippingInfo.FullName,
					Email:    req.ShippingInfo.Email,
					Phone:    req.ShippingInfo.Phone,
					Address:  req.ShippingInfo.Address,
					City:     req.ShippingInfo.City,
					Country:  req.ShippingInfo.Country,
				},
				Items: orderItems,
			}

			if err := tx.Create(&order).Error; err != nil {
				return err
			}

			created = append(created, CreatedOrder{
				ID:       order.ID,
				SellerID: order.SellerID,
				Amount:   order.TotalAmount,
			})
		}

		// Remove only the items that were actually ordered; anything
		// else in the cart survives the checkout.
		var cart models.Cart
		err := tx.Where("user_id = ?", buyerID).First(&cart).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		return tx.Where("cart_id = ? AND product_id IN ?", cart.ID, productIDs).
			Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// -------- Handlers --------

// POST /api/orders
func PlaceOrderHandler(db *gorm.DB, pub *events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		buyerID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid order data"})
			return
		}

		created, err := PlaceOrders(db, buyerID, req)
		if err != nil {
			var notFound *ProductsNotFoundError
			if errors.As(err, &notFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
				return
			}
			log.Printf("❌ Checkout failed for buyer %s: %v", buyerID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}

		// Best effort fan-out; checkout already committed.
		for _, order := range created {
			broadcastNewOrder(order)
			if err := pub.Publish("order.created", order); err != nil {
				log.Printf("⚠️ Failed to publish order.created for %s: %v", order.ID, err)
			}
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Orders created and cart cleared successfully",
			"orders":  created,
		})
	}
}

// GET /api/orders/:id
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		buyerID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		orderID := c.Param("id")

		var order models.Order
		if err := db.
			Preload("ShippingInfo").
			Preload("Items.Product").
			Where("id = ? AND buyer_id = ?", orderID, buyerID).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}

// PATCH /api/orders/:id
// Only the seller that owns the order may move its status or attach a
// tracking number. No transition graph: any of the four states can be
// set at any time.
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sellerID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		orderID := c.Param("id")

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		newStatus, err := mapOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
			return
		}

		updates := map[string]interface{}{"status": newStatus}
		if req.TrackingNumber != "" {
			updates["tracking_number"] = req.TrackingNumber
		}

		result := db.Model(&models.Order{}).
			Where("id = ? AND seller_id = ?", orderID, sellerID).
			Updates(updates)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found or you do not have permission to update it"})
			return
		}

		var order models.Order
		if err := db.Preload("ShippingInfo").Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch updated order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}
