package entity

import (
	"gorm.io/gorm"
)

type Addon struct {
	gorm.Model
	Name       string `json:"name"`
	Price      int64  `json:"price"` // pence per serving
	GroupTitle string `json:"groupTitle"`

	MenuItemID uint     `json:"menuItemId"`
	MenuItem   MenuItem `json:"-"`
}
