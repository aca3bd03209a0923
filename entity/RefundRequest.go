package entity

import (
	"gorm.io/gorm"
)

type RefundRequest struct {
	gorm.Model
	OrderID uint  `json:"orderId"`
	Order   Order `json:"-"`

	// The restaurant the refund is raised against (orders span restaurants).
	RestaurantID uint       `json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	RequestedBy uint `json:"requestedBy"` // users.id
	User        User `gorm:"foreignKey:RequestedBy" json:"-"`

	Reason          string `json:"reason"`
	RequestedAmount int64  `json:"requestedAmount"`
	ApprovedAmount  int64  `json:"approvedAmount"`
	Note            string `json:"note"` // set when processed

	RefundStatusID uint         `json:"refundStatusId"`
	RefundStatus   RefundStatus `json:"refundStatus"`

	Items []RefundItem `json:"items" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
