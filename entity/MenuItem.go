package entity

import (
	"gorm.io/gorm"
)

// One catering unit feeds this many people unless the item says otherwise.
const DefaultFeedsPerUnit = 10

type MenuItem struct {
	gorm.Model
	Name          string `json:"name"`
	Detail        string `json:"detail"`
	Price         int64  `json:"price"` // pence per unit
	DiscountPrice int64  `json:"discountPrice"`
	IsDiscount    bool   `json:"isDiscount"`

	// Menu section ("Mains", "Desserts", ...) used for minimum-order rules.
	GroupTitle   string `json:"groupTitle"`
	FeedsPerUnit int    `gorm:"default:10" json:"feedsPerUnit"`

	// Comma-separated tags, e.g. "vegan,halal" / "nuts,dairy"
	Dietary   string `json:"dietary"`
	Allergens string `json:"allergens"`

	RestaurantID uint       `json:"restaurantId"`
	Restaurant   Restaurant `json:"-"` // preload when the name is needed

	Addons []Addon `json:"addons" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// UnitPrice is the effective per-unit price, honouring an active discount.
func (m *MenuItem) UnitPrice() int64 {
	if m.IsDiscount && m.DiscountPrice > 0 {
		return m.DiscountPrice
	}
	return m.Price
}
