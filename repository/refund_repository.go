package repository

import (
	"swiftcater/entity"

	"gorm.io/gorm"
)

type RefundRepository struct{ DB *gorm.DB }

func NewRefundRepository(db *gorm.DB) *RefundRepository {
	return &RefundRepository{DB: db}
}

func (r *RefundRepository) Create(tx *gorm.DB, req *entity.RefundRequest) error {
	return tx.Create(req).Error
}

func (r *RefundRepository) Get(id uint) (*entity.RefundRequest, error) {
	var req entity.RefundRequest
	err := r.DB.Preload("Items").Preload("RefundStatus").First(&req, id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RefundRepository) ListByOrder(orderID uint) ([]entity.RefundRequest, error) {
	var out []entity.RefundRequest
	err := r.DB.Where("order_id = ?", orderID).
		Preload("Items").
		Preload("RefundStatus").
		Order("id DESC").
		Find(&out).Error
	return out, err
}

func (r *RefundRepository) ListByRestaurant(restID uint, statusID *uint) ([]entity.RefundRequest, error) {
	q := r.DB.Where("restaurant_id = ?", restID)
	if statusID != nil && *statusID != 0 {
		q = q.Where("refund_status_id = ?", *statusID)
	}
	var out []entity.RefundRequest
	err := q.Preload("Items").Preload("RefundStatus").Order("id DESC").Find(&out).Error
	return out, err
}

func (r *RefundRepository) Save(req *entity.RefundRequest) error {
	return r.DB.Save(req).Error
}

func (r *RefundRepository) GetStatusIDByName(name string) (uint, error) {
	var st entity.RefundStatus
	if err := r.DB.Where("status_name = ?", name).First(&st).Error; err != nil {
		return 0, err
	}
	return st.ID, nil
}

func (r *RefundRepository) CountPendingForRestaurant(restID, pendingStatusID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.RefundRequest{}).
		Where("restaurant_id = ? AND refund_status_id = ?", restID, pendingStatusID).
		Count(&count).Error
	return count, err
}
