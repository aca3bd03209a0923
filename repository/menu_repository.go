package repository

import (
	"swiftcater/entity"

	"gorm.io/gorm"
)

type MenuRepository struct{ DB *gorm.DB }

func NewMenuRepository(db *gorm.DB) *MenuRepository { return &MenuRepository{DB: db} }

func (r *MenuRepository) GetItem(id uint) (*entity.MenuItem, error) {
	var m entity.MenuItem
	if err := r.DB.Preload("Restaurant").First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// CountAddonsBelongToItem confirms every selected addon id hangs off the menu
// item before a selection is accepted.
func (r *MenuRepository) CountAddonsBelongToItem(menuItemID uint, addonIDs []uint) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.Addon{}).
		Where("menu_item_id = ? AND id IN ?", menuItemID, addonIDs).
		Count(&count).Error
	return count, err
}

func (r *MenuRepository) GetAddonsByIDs(ids []uint) ([]entity.Addon, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var addons []entity.Addon
	err := r.DB.Where("id IN ?", ids).Find(&addons).Error
	return addons, err
}

func (r *MenuRepository) ListByRestaurant(restID uint) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	err := r.DB.Where("restaurant_id = ?", restID).
		Preload("Addons").
		Order("group_title ASC, id ASC").
		Find(&items).Error
	return items, err
}

func (r *MenuRepository) CreateItem(m *entity.MenuItem) error {
	return r.DB.Create(m).Error
}

func (r *MenuRepository) UpdateItem(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.MenuItem{}).Where("id = ?", id).Updates(updates).Error
}
