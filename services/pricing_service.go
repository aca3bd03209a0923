package services

import (
	"errors"

	"swiftcater/entity"
	"swiftcater/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Delivery fee bands by road distance, pence. Past the last band the fee is
// provisional and the session needs a manual quote.
const (
	feeBandNear   = 500  // <= 3 miles
	feeBandMid    = 900  // <= 6 miles
	feeBandFar    = 1400 // <= 10 miles
	customQuoteAt = 10.0 // miles
)

// DeliveryFeeForDistance returns the banded fee and whether the distance
// pushes the session into manual-quote territory.
func DeliveryFeeForDistance(miles float64) (fee int64, requiresCustomQuote bool) {
	switch {
	case miles <= 3:
		return feeBandNear, false
	case miles <= 6:
		return feeBandMid, false
	case miles <= customQuoteAt:
		return feeBandFar, false
	default:
		// provisional top-band fee, subject to manual review
		return feeBandFar, true
	}
}

// SessionFee is one row of the collapsible delivery-fee breakdown.
type SessionFee struct {
	SessionID           uint     `json:"sessionId"`
	Label               string   `json:"label"`
	DistanceMiles       *float64 `json:"distanceMiles,omitempty"`
	Fee                 int64    `json:"fee"`
	TBC                 bool     `json:"tbc"`
	RequiresCustomQuote bool     `json:"requiresCustomQuote"`
}

// PricingResult is the display-ready breakdown.
type PricingResult struct {
	Subtotal          int64 `json:"subtotal"`
	PromotionDiscount int64 `json:"promotionDiscount"`
	PromoDiscount     int64 `json:"promoDiscount"`
	DeliveryFee       int64 `json:"deliveryFee"`
	DeliveryFeeTBC    bool  `json:"deliveryFeeTbc"`
	Total             int64 `json:"total"`

	// Pre-discount figure, struck through whenever any discount applies.
	PreDiscountTotal int64 `json:"preDiscountTotal"`

	RequiresCustomQuote bool         `json:"requiresCustomQuote"`
	DistanceMiles       *float64     `json:"distanceInMiles,omitempty"`
	Breakdown           []SessionFee `json:"deliveryFeeBreakdown,omitempty"`

	// Derived per-serving figure for display.
	PricePerHead decimal.Decimal `json:"pricePerHead"`

	Groups []GroupedRestaurantOrder `json:"groups"`
}

type PricingService struct {
	DB          *gorm.DB
	SessionRepo *repository.SessionRepository
	RestRepo    *repository.RestaurantRepository
	PromoRepo   *repository.PromotionRepository
}

func NewPricingService(db *gorm.DB, sr *repository.SessionRepository, rr *repository.RestaurantRepository, pr *repository.PromotionRepository) *PricingService {
	return &PricingService{DB: db, SessionRepo: sr, RestRepo: rr, PromoRepo: pr}
}

// Estimate is the optimistic local figure shown before an authoritative
// quote exists: line totals only, delivery marked as to-be-confirmed.
func Estimate(items []SelectedItem) (int64, error) {
	groups, err := GroupByRestaurant(items)
	if err != nil {
		return 0, err
	}
	return SubtotalOf(groups), nil
}

// Quote runs the full pricing pass for a session and advances its pricing
// state to priced (or failed).
func (s *PricingService) Quote(userID, sessionID uint) (*PricingResult, error) {
	session, err := s.SessionRepo.GetWithItems(userID, sessionID)
	if err != nil {
		return nil, err
	}

	res, err := s.quoteSession(session)
	state := entity.PricingPriced
	if err != nil {
		state = entity.PricingFailed
	}
	if stErr := s.SessionRepo.SetPricingState(s.DB, sessionID, state); stErr != nil && err == nil {
		return nil, stErr
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *PricingService) quoteSession(session *entity.MealSession) (*PricingResult, error) {
	items, err := BuildSelectedItems(session)
	if err != nil {
		return nil, err
	}
	groups, err := GroupByRestaurant(items)
	if err != nil {
		return nil, err
	}

	subtotal := SubtotalOf(groups)

	// Restaurant-level promotions, per grouping.
	var promotionDiscount int64
	for _, g := range groups {
		rest, err := s.RestRepo.Get(g.RestaurantID)
		if err != nil {
			return nil, err
		}
		if rest.PromotionPercent > 0 {
			promotionDiscount += g.Subtotal * int64(rest.PromotionPercent) / 100
		}
	}

	// Promo codes in arrival order. Percent codes track the cart: they are
	// re-evaluated against the current subtotal on every pass. Fixed amounts
	// (and codes retired since apply) keep their apply-time snapshot.
	var promoDiscount int64
	for _, p := range session.Promos {
		d := p.Discount
		promo, err := s.PromoRepo.FindByCode(p.Code)
		switch {
		case err == nil && promo.PercentOff > 0:
			d = promoBase(groups, promo, subtotal) * int64(promo.PercentOff) / 100
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}
		promoDiscount += d
	}
	if promotionDiscount+promoDiscount > subtotal {
		promoDiscount = subtotal - promotionDiscount
		if promoDiscount < 0 {
			promoDiscount = 0
		}
	}

	res := &PricingResult{
		Subtotal:          subtotal,
		PromotionDiscount: promotionDiscount,
		PromoDiscount:     promoDiscount,
		DistanceMiles:     session.DistanceMiles,
		Groups:            groups,
	}

	fee := SessionFee{SessionID: session.ID, Label: session.Label, DistanceMiles: session.DistanceMiles}
	if session.DistanceMiles == nil {
		// Distance unresolved: delivery is TBC and excluded from the total.
		fee.TBC = true
		res.DeliveryFeeTBC = true
	} else {
		fee.Fee, fee.RequiresCustomQuote = DeliveryFeeForDistance(*session.DistanceMiles)
		res.DeliveryFee = fee.Fee
		res.RequiresCustomQuote = fee.RequiresCustomQuote
	}
	res.Breakdown = []SessionFee{fee}

	res.PreDiscountTotal = subtotal + res.DeliveryFee
	res.Total = subtotal - promotionDiscount - promoDiscount + res.DeliveryFee

	if heads := totalServings(items); heads > 0 {
		res.PricePerHead = decimal.NewFromInt(res.Total).
			Div(decimal.NewFromInt(heads)).Round(2)
	}

	return res, nil
}

// totalServings counts people fed: qty is already in servings.
func totalServings(items []SelectedItem) int64 {
	var total int64
	for _, it := range items {
		total += int64(it.Qty)
	}
	return total
}
