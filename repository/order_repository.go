package repository

import (
	"time"

	"swiftcater/entity"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByToken powers the no-login tracking view.
func (r *OrderRepository) GetByToken(token string) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.Where("public_token = ?", token).
		Preload("OrderStatus").
		Preload("OrderItems").
		Preload("OrderItems.MenuItem").
		Preload("OrderItems.Restaurant").
		Preload("OrderItems.Addons").
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

type OrderSummary struct {
	ID            uint      `json:"id"`
	PublicToken   string    `json:"publicToken"`
	Total         int64     `json:"total"`
	OrderStatusID uint      `json:"orderStatusId"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (r *OrderRepository) ListOrdersForUser(userID uint, limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []OrderSummary
	err := r.DB.Model(&entity.Order{}).
		Select("id, public_token, total, order_status_id, created_at").
		Where("user_id = ?", userID).
		Order("id DESC").Limit(limit).
		Scan(&out).Error
	return out, err
}

func (r *OrderRepository) GetOrderForUser(userID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Where("id = ? AND user_id = ?", orderID, userID).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderItems(orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.DB.Where("order_id = ?", orderID).
		Preload("MenuItem").
		Preload("Addons").
		Find(&items).Error
	return items, err
}

type RestaurantOrderSummary struct {
	ID            uint      `json:"id"`
	PublicToken   string    `json:"publicToken"`
	CustomerName  string    `json:"customerName"`
	RestaurantCut int64     `json:"restaurantCut"` // sum of this restaurant's lines
	OrderStatusID uint      `json:"orderStatusId"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ListOrdersForRestaurant lists orders that include at least one line from
// the restaurant, with that restaurant's share of the total.
func (r *OrderRepository) ListOrdersForRestaurant(restID uint, statusID *uint, page, limit int) ([]RestaurantOrderSummary, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	offset := (page - 1) * limit

	base := r.DB.Table("orders AS o").
		Joins("JOIN order_items oi ON oi.order_id = o.id AND oi.deleted_at IS NULL").
		Where("oi.restaurant_id = ?", restID).
		Where("o.deleted_at IS NULL")
	if statusID != nil && *statusID != 0 {
		base = base.Where("o.order_status_id = ?", *statusID)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Distinct("o.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []RestaurantOrderSummary
	err := base.Session(&gorm.Session{}).
		Select("o.id, o.public_token, o.customer_name, SUM(oi.total) AS restaurant_cut, o.order_status_id, o.created_at").
		Group("o.id").
		Order("o.id DESC").Limit(limit).Offset(offset).
		Scan(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// OrderIncludesRestaurantOwnedBy guards owner-side order actions.
func (r *OrderRepository) OrderIncludesRestaurantOwnedBy(orderID, userID uint) (bool, error) {
	var count int64
	err := r.DB.Table("order_items AS oi").
		Joins("JOIN restaurants rst ON rst.id = oi.restaurant_id").
		Where("oi.order_id = ? AND rst.user_id = ?", orderID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *OrderRepository) GetStatusIDByName(name string) (uint, error) {
	var st entity.OrderStatus
	if err := r.DB.Where("status_name = ?", name).First(&st).Error; err != nil {
		return 0, err
	}
	return st.ID, nil
}

// UpdateStatusGuard flips status only from the expected current value, so
// concurrent transitions cannot double-apply.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID, fromStatus, toStatus uint) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND order_status_id = ?", orderID, fromStatus).
		Update("order_status_id", toStatus)
	return res.RowsAffected, res.Error
}
