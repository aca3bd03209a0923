package entity

import (
	"gorm.io/gorm"
)

type RefundItem struct {
	gorm.Model
	RefundRequestID uint          `json:"refundRequestId"`
	RefundRequest   RefundRequest `json:"-"`

	OrderItemID uint      `json:"orderItemId"`
	OrderItem   OrderItem `json:"-"`

	Qty    int   `json:"qty"`
	Amount int64 `json:"amount"` // pence
}
