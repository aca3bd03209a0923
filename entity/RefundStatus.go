package entity

import (
	"gorm.io/gorm"
)

type RefundStatus struct {
	gorm.Model
	StatusName string `json:"statusName"`

	RefundRequests []RefundRequest `json:"-"`
}
