package entity

import (
	"time"

	"gorm.io/gorm"
)

// Pricing pass states for a session. Re-entered on every cart mutation.
const (
	PricingIdle        = "idle"
	PricingCalculating = "calculating"
	PricingPriced      = "priced"
	PricingFailed      = "failed"
)

// MealSession is one delivery/meal occasion within an event (e.g. lunch vs
// dinner), with its own item list, promo codes and delivery fee.
type MealSession struct {
	gorm.Model
	UserID uint `json:"userId"`
	User   User `json:"-"`

	Label     string     `json:"label"` // "Lunch", "Dinner", ...
	EventDate *time.Time `json:"eventDate,omitempty"`
	EventType string     `json:"eventType"`

	DeliveryAddress string   `json:"deliveryAddress"`
	Postcode        string   `json:"postcode"`
	DistanceMiles   *float64 `json:"distanceMiles,omitempty"` // nil until resolved

	PricingState string `gorm:"default:idle" json:"pricingState"`

	Items  []SessionItem  `json:"items" gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Promos []SessionPromo `json:"promos" gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
