package entity

import (
	"gorm.io/gorm"
)

type OrderItemAddon struct {
	gorm.Model
	OrderItemID uint      `json:"orderItemId"`
	OrderItem   OrderItem `json:"-"`

	AddonID    uint   `json:"addonId"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	Qty        int    `json:"qty"`
	GroupTitle string `json:"groupTitle"`
}
