package entity

import (
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Postcode    string `json:"postcode"`
	Cuisine     string `json:"cuisine"`

	// Restaurant-level promotion applied to its subtotal, in percent (0 = none).
	PromotionPercent uint `json:"promotionPercent"`

	RestaurantStatusID uint             `json:"restaurantStatusId"`
	RestaurantStatus   RestaurantStatus `json:"-"`

	UserID uint `json:"userId"` // owner (users.id)
	User   User `json:"-"`

	MenuItems     []MenuItem     `json:"-"`
	MinOrderRules []MinOrderRule `json:"-"`
	Promotions    []Promotion    `json:"-"`
}
