package repository

import (
	"errors"

	"swiftcater/entity"

	"gorm.io/gorm"
)

type SessionRepository struct{ DB *gorm.DB }

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

// GetWithItems loads a session with items, menu data and promos. Promos come
// back in insertion order (position).
func (r *SessionRepository) GetWithItems(userID, sessionID uint) (*entity.MealSession, error) {
	var s entity.MealSession
	err := r.DB.Where("id = ? AND user_id = ?", sessionID, userID).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("session_items.id ASC") }).
		Preload("Items.MenuItem").
		Preload("Items.MenuItem.Restaurant").
		Preload("Items.Addons").
		Preload("Promos", func(db *gorm.DB) *gorm.DB { return db.Order("session_promos.position ASC") }).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) ListForUser(userID uint) ([]entity.MealSession, error) {
	var out []entity.MealSession
	err := r.DB.Where("user_id = ?", userID).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *SessionRepository) Create(s *entity.MealSession) error {
	return r.DB.Create(s).Error
}

func (r *SessionRepository) Save(s *entity.MealSession) error {
	return r.DB.Save(s).Error
}

// UpsertItem merges same-item lines (same menu item, no addon diffing needed
// for catering units: an add of an existing item grows the line).
func (r *SessionRepository) UpsertItem(tx *gorm.DB, sessionID uint, row *entity.SessionItem) error {
	var exist entity.SessionItem
	err := tx.Where("session_id = ? AND menu_item_id = ?", sessionID, row.MenuItemID).
		First(&exist).Error
	if err == nil {
		exist.Qty += row.Qty
		if len(row.Addons) > 0 {
			for i := range row.Addons {
				row.Addons[i].SessionItemID = exist.ID
			}
			if err := tx.Create(&row.Addons).Error; err != nil {
				return err
			}
		}
		return tx.Save(&exist).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	row.SessionID = sessionID
	return tx.Create(row).Error
}

func (r *SessionRepository) UpdateQty(tx *gorm.DB, userID, itemID uint, qty int) error {
	if qty <= 0 {
		return r.RemoveItem(tx, userID, itemID)
	}
	// ensure item belongs to one of the user's sessions
	res := tx.Exec(`
		UPDATE session_items
		   SET qty = ?
		 WHERE id = ?
		   AND session_id IN (SELECT id FROM meal_sessions WHERE user_id = ?)
	`, qty, itemID, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *SessionRepository) RemoveItem(tx *gorm.DB, userID, itemID uint) error {
	res := tx.
		Where("id = ? AND session_id IN (SELECT id FROM meal_sessions WHERE user_id = ?)", itemID, userID).
		Delete(&entity.SessionItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *SessionRepository) ClearItems(tx *gorm.DB, sessionID uint) error {
	if err := tx.Where("session_id = ?", sessionID).Delete(&entity.SessionItem{}).Error; err != nil {
		return err
	}
	return tx.Where("session_id = ?", sessionID).Delete(&entity.SessionPromo{}).Error
}

func (r *SessionRepository) SetPricingState(tx *gorm.DB, sessionID uint, state string) error {
	return tx.Model(&entity.MealSession{}).Where("id = ?", sessionID).
		Update("pricing_state", state).Error
}

// ----- applied promo codes -----

func (r *SessionRepository) Promos(sessionID uint) ([]entity.SessionPromo, error) {
	var rows []entity.SessionPromo
	err := r.DB.Where("session_id = ?", sessionID).Order("position ASC").Find(&rows).Error
	return rows, err
}

func (r *SessionRepository) AppendPromo(tx *gorm.DB, sessionID uint, code string, discount int64) error {
	var max int
	row := tx.Model(&entity.SessionPromo{}).
		Where("session_id = ?", sessionID).
		Select("COALESCE(MAX(position), 0)")
	if err := row.Scan(&max).Error; err != nil {
		return err
	}
	return tx.Create(&entity.SessionPromo{
		SessionID: sessionID,
		Code:      code,
		Discount:  discount,
		Position:  max + 1,
	}).Error
}

func (r *SessionRepository) RemovePromo(tx *gorm.DB, sessionID uint, code string) error {
	return tx.Where("session_id = ? AND code = ?", sessionID, code).
		Delete(&entity.SessionPromo{}).Error
}
