package entity

import (
	"gorm.io/gorm"
)

// SessionItem quantities are always a multiple of the catering unit (10).
type SessionItem struct {
	gorm.Model
	SessionID uint        `json:"sessionId"`
	Session   MealSession `json:"-"`

	MenuItemID uint     `json:"menuItemId"`
	MenuItem   MenuItem `json:"-"`

	Qty int `json:"qty"`

	Addons []SessionItemAddon `json:"addons" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
