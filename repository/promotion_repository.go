package repository

import (
	"swiftcater/entity"

	"gorm.io/gorm"
)

type PromotionRepository struct{ DB *gorm.DB }

func NewPromotionRepository(db *gorm.DB) *PromotionRepository {
	return &PromotionRepository{DB: db}
}

func (r *PromotionRepository) FindByCode(code string) (*entity.Promotion, error) {
	var p entity.Promotion
	if err := r.DB.Where("promo_code = ?", code).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PromotionRepository) FindByID(id uint) (*entity.Promotion, error) {
	var p entity.Promotion
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PromotionRepository) ListForRestaurant(restID uint) ([]entity.Promotion, error) {
	var out []entity.Promotion
	err := r.DB.Where("restaurant_id = ?", restID).Order("id DESC").Find(&out).Error
	return out, err
}

func (r *PromotionRepository) Create(p *entity.Promotion) error {
	return r.DB.Create(p).Error
}

func (r *PromotionRepository) Update(id uint, p *entity.Promotion) error {
	var existing entity.Promotion
	if err := r.DB.First(&existing, id).Error; err != nil {
		return err
	}
	return r.DB.Model(&existing).Updates(p).Error
}

func (r *PromotionRepository) Delete(id uint) error {
	return r.DB.Unscoped().Delete(&entity.Promotion{}, id).Error
}

