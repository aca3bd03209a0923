package entity

import (
	"time"

	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	// Public tracking token - resolves the order with no login.
	PublicToken string `gorm:"size:64;uniqueIndex;not null" json:"publicToken"`

	UserID uint `json:"userId"`
	User   User `json:"-"`

	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`

	EventDate *time.Time `json:"eventDate,omitempty"`
	EventType string     `json:"eventType"`
	Label     string     `json:"label"` // meal occasion the order came from

	DeliveryAddress string `json:"deliveryAddress"`
	Postcode        string `json:"postcode"`

	Subtotal          int64 `json:"subtotal"`
	PromotionDiscount int64 `json:"promotionDiscount"` // restaurant-level promos
	PromoDiscount     int64 `json:"promoDiscount"`     // applied promo codes
	DeliveryFee       int64 `json:"deliveryFee"`
	Total             int64 `json:"total"`

	OrderStatusID uint        `json:"orderStatusId"`
	OrderStatus   OrderStatus `json:"orderStatus"`

	// preload only for detail views
	OrderItems []OrderItem     `json:"-"`
	Refunds    []RefundRequest `json:"-"`
}
