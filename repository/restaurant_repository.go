package repository

import (
	"strings"

	"swiftcater/entity"

	"gorm.io/gorm"
)

type RestaurantRepository struct{ DB *gorm.DB }

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

func (r *RestaurantRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.DB.Model(&entity.Restaurant{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *RestaurantRepository) IsOwnedBy(restID, userID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&entity.Restaurant{}).
		Where("id = ? AND user_id = ?", restID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *RestaurantRepository) Get(id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.First(&rest, id).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) GetWithMenu(id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	err := r.DB.
		Preload("MenuItems").
		Preload("MenuItems.Addons").
		Preload("MinOrderRules").
		First(&rest, id).Error
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

// MinOrderRules returns the restaurant's rules partitioned required-first,
// preserving creation order within each partition.
func (r *RestaurantRepository) MinOrderRules(restID uint) ([]entity.MinOrderRule, error) {
	var rules []entity.MinOrderRule
	err := r.DB.Where("restaurant_id = ?", restID).
		Order("required DESC, id ASC").
		Find(&rules).Error
	return rules, err
}

type ListFilter struct {
	Cuisine      string
	Dietary      string // tag every listed restaurant must serve
	Allergen     string // tag to exclude
	MaxPerPerson int64  // pence per person ceiling, 0 = no bound
}

// List applies the customer's filter preferences. Dietary/allergen matching
// goes through menu items since tags live on the line, not the restaurant.
func (r *RestaurantRepository) List(f ListFilter, limit int) ([]entity.Restaurant, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	q := r.DB.Model(&entity.Restaurant{}).Order("id ASC").Limit(limit)
	if f.Cuisine != "" {
		q = q.Where("cuisine = ?", f.Cuisine)
	}
	if f.Dietary != "" {
		q = q.Where("id IN (?)", r.DB.Model(&entity.MenuItem{}).
			Select("restaurant_id").
			Where("dietary LIKE ?", "%"+strings.ToLower(f.Dietary)+"%"))
	}
	if f.Allergen != "" {
		q = q.Where("id NOT IN (?)", r.DB.Model(&entity.MenuItem{}).
			Select("restaurant_id").
			Where("allergens LIKE ?", "%"+strings.ToLower(f.Allergen)+"%"))
	}
	if f.MaxPerPerson > 0 {
		q = q.Where("id IN (?)", r.DB.Model(&entity.MenuItem{}).
			Select("restaurant_id").
			Where("price / feeds_per_unit <= ?", f.MaxPerPerson))
	}

	var out []entity.Restaurant
	err := q.Find(&out).Error
	return out, err
}
