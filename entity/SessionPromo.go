package entity

import (
	"gorm.io/gorm"
)

// SessionPromo is an applied promo code. Codes are stored uppercase and kept
// in arrival order via Position; (session, code) is unique.
type SessionPromo struct {
	gorm.Model
	SessionID uint        `gorm:"uniqueIndex:idx_session_code" json:"sessionId"`
	Session   MealSession `json:"-"`

	Code     string `gorm:"size:50;uniqueIndex:idx_session_code" json:"code"`
	Discount int64  `json:"discount"` // pence, as validated at apply time
	Position int    `json:"position"`
}
