package entity

import (
	"time"

	"gorm.io/gorm"
)

type Promotion struct {
	gorm.Model
	PromoCode   string     `gorm:"size:50;uniqueIndex;not null" json:"promoCode"`
	PromoDetail string     `json:"promoDetail"`
	PercentOff  uint       `json:"percentOff"` // either percent...
	AmountOff   int64      `json:"amountOff"`  // ...or a fixed pence amount
	MinOrder    int64      `json:"minOrder"`   // subtotal floor in pence
	StartAt     *time.Time `json:"startAt,omitempty"`
	EndAt       *time.Time `json:"endAt,omitempty"`

	// nil = platform-wide code
	RestaurantID *uint       `json:"restaurantId,omitempty"`
	Restaurant   *Restaurant `json:"-"`
}

// Active reports whether the code window covers now.
func (p *Promotion) Active(now time.Time) bool {
	if p.StartAt != nil && now.Before(*p.StartAt) {
		return false
	}
	if p.EndAt != nil && now.After(*p.EndAt) {
		return false
	}
	return true
}
