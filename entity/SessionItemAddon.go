package entity

import (
	"gorm.io/gorm"
)

// Addon selection snapshot. Qty is per serving-unit; pricing scales it by
// the item's feeds-per-unit.
type SessionItemAddon struct {
	gorm.Model
	SessionItemID uint        `json:"sessionItemId"`
	SessionItem   SessionItem `json:"-"`

	AddonID    uint   `json:"addonId"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	Qty        int    `json:"qty"`
	GroupTitle string `json:"groupTitle"`
}
