package services

import (
	"errors"
	"math"

	"swiftcater/entity"
	"swiftcater/repository"

	"gorm.io/gorm"
)

// Catering items are ordered in units of ten servings.
const QuantityUnit = 10

var (
	ErrAddonNotOnItem   = errors.New("addon does not belong to this menu item")
	ErrMenuItemNotFound = errors.New("menu item not found")
)

// NormalizeQuantity snaps any requested quantity to the nearest unit with a
// one-unit floor: 4 → 10, 23 → 20, 27 → 30.
func NormalizeQuantity(q int) int {
	units := int(math.Round(float64(q) / QuantityUnit))
	if units < 1 {
		units = 1
	}
	return units * QuantityUnit
}

type SessionService struct {
	DB       *gorm.DB
	Repo     *repository.SessionRepository
	MenuRepo *repository.MenuRepository
}

func NewSessionService(db *gorm.DB, sr *repository.SessionRepository, mr *repository.MenuRepository) *SessionService {
	return &SessionService{DB: db, Repo: sr, MenuRepo: mr}
}

type CreateSessionIn struct {
	Label           string  `json:"label" binding:"required"`
	EventType       string  `json:"eventType"`
	EventDate       *string `json:"eventDate"`
	DeliveryAddress string  `json:"deliveryAddress"`
	Postcode        string  `json:"postcode"`
}

type AddonSelectionIn struct {
	AddonID uint `json:"addonId" binding:"required"`
	Qty     int  `json:"qty" binding:"min=1"`
}

type AddItemIn struct {
	MenuItemID uint               `json:"menuItemId" binding:"required"`
	Qty        int                `json:"qty"`
	Addons     []AddonSelectionIn `json:"addons"`
}

func (s *SessionService) Get(userID, sessionID uint) (*entity.MealSession, error) {
	return s.Repo.GetWithItems(userID, sessionID)
}

// AddItem validates the addon picks against the menu item, snaps the
// quantity to catering units and merges into the session. Every mutation
// re-enters the pricing state machine.
func (s *SessionService) AddItem(userID, sessionID uint, in *AddItemIn) error {
	if _, err := s.Repo.GetWithItems(userID, sessionID); err != nil {
		return err
	}

	m, err := s.MenuRepo.GetItem(in.MenuItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMenuItemNotFound
		}
		return err
	}

	addonIDs := make([]uint, 0, len(in.Addons))
	qtyByAddon := make(map[uint]int, len(in.Addons))
	for _, a := range in.Addons {
		addonIDs = append(addonIDs, a.AddonID)
		qtyByAddon[a.AddonID] = a.Qty
	}
	if len(addonIDs) > 0 {
		cnt, err := s.MenuRepo.CountAddonsBelongToItem(m.ID, addonIDs)
		if err != nil {
			return err
		}
		if cnt != int64(len(addonIDs)) {
			return ErrAddonNotOnItem
		}
	}
	addons, err := s.MenuRepo.GetAddonsByIDs(addonIDs)
	if err != nil {
		return err
	}

	addonRows := make([]entity.SessionItemAddon, 0, len(addons))
	for _, a := range addons {
		addonRows = append(addonRows, entity.SessionItemAddon{
			AddonID:    a.ID,
			Name:       a.Name,
			Price:      a.Price,
			Qty:        qtyByAddon[a.ID],
			GroupTitle: a.GroupTitle,
		})
	}

	row := &entity.SessionItem{
		MenuItemID: m.ID,
		Qty:        NormalizeQuantity(in.Qty),
		Addons:     addonRows,
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.UpsertItem(tx, sessionID, row); err != nil {
			return err
		}
		return s.Repo.SetPricingState(tx, sessionID, entity.PricingCalculating)
	})
}

// UpdateQty snaps to units; zero or below removes the line.
func (s *SessionService) UpdateQty(userID, sessionID, itemID uint, qty int) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if qty <= 0 {
			if err := s.Repo.RemoveItem(tx, userID, itemID); err != nil {
				return err
			}
		} else if err := s.Repo.UpdateQty(tx, userID, itemID, NormalizeQuantity(qty)); err != nil {
			return err
		}
		return s.Repo.SetPricingState(tx, sessionID, entity.PricingCalculating)
	})
}

func (s *SessionService) RemoveItem(userID, sessionID, itemID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.RemoveItem(tx, userID, itemID); err != nil {
			return err
		}
		return s.Repo.SetPricingState(tx, sessionID, entity.PricingCalculating)
	})
}

func (s *SessionService) Clear(userID, sessionID uint) error {
	if _, err := s.Repo.GetWithItems(userID, sessionID); err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.ClearItems(tx, sessionID); err != nil {
			return err
		}
		return s.Repo.SetPricingState(tx, sessionID, entity.PricingIdle)
	})
}

// BuildSelectedItems turns persisted session rows into the aggregator's
// input. Requires Items.MenuItem.Restaurant preloaded.
func BuildSelectedItems(session *entity.MealSession) ([]SelectedItem, error) {
	out := make([]SelectedItem, 0, len(session.Items))
	for _, it := range session.Items {
		if it.MenuItem.ID == 0 {
			return nil, ErrMenuItemNotFound
		}
		addons := make([]SelectedAddon, 0, len(it.Addons))
		for _, a := range it.Addons {
			addons = append(addons, SelectedAddon{
				AddonID:    a.AddonID,
				Name:       a.Name,
				Price:      a.Price,
				Qty:        a.Qty,
				GroupTitle: a.GroupTitle,
			})
		}
		out = append(out, SelectedItem{
			MenuItemID:     it.MenuItemID,
			Name:           it.MenuItem.Name,
			RestaurantID:   it.MenuItem.RestaurantID,
			RestaurantName: it.MenuItem.Restaurant.Name,
			Price:          it.MenuItem.Price,
			DiscountPrice:  it.MenuItem.DiscountPrice,
			IsDiscount:     it.MenuItem.IsDiscount,
			GroupTitle:     it.MenuItem.GroupTitle,
			FeedsPerUnit:   it.MenuItem.FeedsPerUnit,
			Qty:            it.Qty,
			Addons:         addons,
		})
	}
	return out, nil
}
