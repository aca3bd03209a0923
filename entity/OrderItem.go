package entity

import (
	"gorm.io/gorm"
)

// OrderItem carries its own RestaurantID: an event order can span several
// restaurants, so the restaurant lives on the line, not the order.
type OrderItem struct {
	gorm.Model
	Qty        int   `json:"qty"`
	UnitPrice  int64 `json:"unitPrice"`
	AddonPrice int64 `json:"addonPrice"`
	Total      int64 `json:"total"`

	GroupTitle string `json:"groupTitle"`

	OrderID uint  `json:"orderId"`
	Order   Order `json:"-"`

	MenuItemID uint     `json:"menuItemId"`
	MenuItem   MenuItem `json:"-"` // preload when the name is needed

	RestaurantID uint       `json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	Addons []OrderItemAddon `json:"addons" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
