package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"   // order placed, awaiting seller action
	OrderStatusShipped   OrderStatus = "SHIPPED"   // out for delivery
	OrderStatusDelivered OrderStatus = "DELIVERED" // buyer received the items
	OrderStatusCancelled OrderStatus = "CANCELLED" // called off by either side
)

type Order struct {
	ID               string          `gorm:"primaryKey;size:36" json:"id"`
	BuyerID          string          `gorm:"index;not null" json:"buyerId"`
	SellerID         string          `gorm:"index;not null" json:"sellerId"`
	Status           OrderStatus     `gorm:"type:VARCHAR(20);default:'PENDING'" json:"status"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(12,2)" json:"totalAmount"`
	PaymentMethod    string          `gorm:"not null" json:"paymentMethod"`
	PaymentReference string          `json:"paymentReference"`
	TrackingNumber   string          `json:"trackingNumber"`
	ShippingInfo     ShippingInfo    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"shippingInfo"`
	Items            []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"orderItems"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// ShippingInfo is created together with its order and never shared
// between orders; each seller order in a checkout gets its own copy.
type ShippingInfo struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	OrderID  string `gorm:"uniqueIndex;size:36" json:"orderId"`
	FullName string `gorm:"not null" json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Country  string `json:"country"`
}

// OrderItem links an order to a product without freezing the price;
// the order's TotalAmount is computed once at checkout and stored.
type OrderItem struct {
	ID        string   `gorm:"primaryKey;size:36" json:"id"`
	OrderID   string   `gorm:"index;size:36;not null" json:"orderId"`
	ProductID string   `gorm:"index;size:36;not null" json:"productId"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int      `gorm:"not null" json:"quantity"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

func (s *ShippingInfo) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == "" {
		oi.ID = uuid.NewString()
	}
	return nil
}
