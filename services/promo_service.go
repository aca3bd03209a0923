package services

import (
	"errors"
	"strings"
	"time"

	"swiftcater/entity"
	"swiftcater/repository"

	"gorm.io/gorm"
)

// sentinel errors the controllers switch on
var (
	ErrPromoAlreadyApplied = errors.New("promo code already applied")
	ErrPromoNotFound       = errors.New("invalid promo code")
	ErrPromoNotActive      = errors.New("promo code expired or not yet active")
	ErrPromoMinOrder       = errors.New("order total below promo minimum")
	ErrPromoNotApplied     = errors.New("promo code not applied")
)

// PromoResult is the validation outcome surfaced to the caller.
type PromoResult struct {
	Valid    bool   `json:"valid"`
	Code     string `json:"code,omitempty"`
	Discount int64  `json:"discount,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

type PromoService struct {
	DB          *gorm.DB
	PromoRepo   *repository.PromotionRepository
	SessionRepo *repository.SessionRepository
}

func NewPromoService(db *gorm.DB, pr *repository.PromotionRepository, sr *repository.SessionRepository) *PromoService {
	return &PromoService{DB: db, PromoRepo: pr, SessionRepo: sr}
}

// NormalizeCode uppercases before both the duplicate check and storage.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ContainsCode checks the applied set after normalization.
func ContainsCode(applied []entity.SessionPromo, code string) bool {
	code = NormalizeCode(code)
	for _, p := range applied {
		if p.Code == code {
			return true
		}
	}
	return false
}

// Apply validates a code against the session's current subtotal and appends
// it to the applied set in arrival order. Already-applied codes are rejected
// before any lookup happens.
func (s *PromoService) Apply(userID, sessionID uint, code string) (*PromoResult, error) {
	code = NormalizeCode(code)
	if code == "" {
		return &PromoResult{Valid: false, Reason: "promo code required"}, nil
	}

	session, err := s.SessionRepo.GetWithItems(userID, sessionID)
	if err != nil {
		return nil, err
	}

	if ContainsCode(session.Promos, code) {
		return &PromoResult{Valid: false, Code: code, Reason: ErrPromoAlreadyApplied.Error()}, nil
	}

	promo, err := s.PromoRepo.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &PromoResult{Valid: false, Code: code, Reason: ErrPromoNotFound.Error()}, nil
		}
		return nil, err
	}
	if !promo.Active(time.Now()) {
		return &PromoResult{Valid: false, Code: code, Reason: ErrPromoNotActive.Error()}, nil
	}

	items, err := BuildSelectedItems(session)
	if err != nil {
		return nil, err
	}
	groups, err := GroupByRestaurant(items)
	if err != nil {
		return nil, err
	}

	base := promoBase(groups, promo, SubtotalOf(groups))

	if base < promo.MinOrder {
		return &PromoResult{Valid: false, Code: code, Reason: ErrPromoMinOrder.Error()}, nil
	}

	discount := promo.AmountOff
	if promo.PercentOff > 0 {
		discount = base * int64(promo.PercentOff) / 100
	}
	if discount > base {
		discount = base
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.SessionRepo.AppendPromo(tx, sessionID, code, discount); err != nil {
			return err
		}
		return s.SessionRepo.SetPricingState(tx, sessionID, entity.PricingCalculating)
	})
	if err != nil {
		return nil, err
	}

	return &PromoResult{Valid: true, Code: code, Discount: discount}, nil
}

// promoBase is the subtotal a code discounts against: the scoped restaurant's
// share of the cart for a restaurant code, the whole cart otherwise.
func promoBase(groups []GroupedRestaurantOrder, promo *entity.Promotion, subtotal int64) int64 {
	if promo.RestaurantID == nil {
		return subtotal
	}
	for _, g := range groups {
		if g.RestaurantID == *promo.RestaurantID {
			return g.Subtotal
		}
	}
	return 0
}

// Remove drops a code by exact match (input is normalized first, stored codes
// already are).
func (s *PromoService) Remove(userID, sessionID uint, code string) error {
	code = NormalizeCode(code)

	session, err := s.SessionRepo.GetWithItems(userID, sessionID)
	if err != nil {
		return err
	}
	if !ContainsCode(session.Promos, code) {
		return ErrPromoNotApplied
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.SessionRepo.RemovePromo(tx, sessionID, code); err != nil {
			return err
		}
		return s.SessionRepo.SetPricingState(tx, sessionID, entity.PricingCalculating)
	})
}
