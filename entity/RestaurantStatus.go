package entity

import (
	"gorm.io/gorm"
)

type RestaurantStatus struct {
	gorm.Model
	StatusName string `json:"statusName"`

	Restaurants []Restaurant `json:"-"`
}
