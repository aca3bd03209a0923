package services

import (
	"testing"

	"swiftcater/entity"
	"swiftcater/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a single connection keeps the in-memory database alive
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.RestaurantStatus{}, &entity.Restaurant{},
		&entity.MenuItem{}, &entity.Addon{}, &entity.MinOrderRule{},
		&entity.MealSession{}, &entity.SessionItem{}, &entity.SessionItemAddon{}, &entity.SessionPromo{},
		&entity.Promotion{},
	))
	return db
}

func seedQuoteFixture(t *testing.T, db *gorm.DB, distance *float64) (*PricingService, uint, uint) {
	t.Helper()

	rest := entity.Restaurant{Name: "Bangkok Kitchen"}
	require.NoError(t, db.Create(&rest).Error)

	item := entity.MenuItem{
		Name: "Chicken Satay Platter", Price: 10, FeedsPerUnit: 10,
		GroupTitle: "Mains", RestaurantID: rest.ID,
	}
	require.NoError(t, db.Create(&item).Error)

	session := entity.MealSession{
		UserID: 1, Label: "Lunch", PricingState: entity.PricingCalculating,
		DistanceMiles: distance,
		Items:         []entity.SessionItem{{MenuItemID: item.ID, Qty: 10}},
	}
	require.NoError(t, db.Create(&session).Error)

	svc := NewPricingService(db, repository.NewSessionRepository(db), repository.NewRestaurantRepository(db), repository.NewPromotionRepository(db))
	return svc, session.ID, rest.ID
}

// With subtotal 100, promo discount 5, restaurant promotion 10 and a near-band
// delivery fee, the struck-through figure is subtotal + fee, untouched by any
// discount.
func TestQuotePreDiscountTotal(t *testing.T) {
	db := openTestDB(t)
	two := 2.0
	svc, sessionID, restID := seedQuoteFixture(t, db, &two)

	// restaurant-level 10% promotion
	require.NoError(t, db.Model(&entity.Restaurant{}).Where("id = ?", restID).
		Update("promotion_percent", 10).Error)
	// an applied promo code worth 5p
	require.NoError(t, db.Create(&entity.SessionPromo{
		SessionID: sessionID, Code: "SAVE5", Discount: 5, Position: 1,
	}).Error)

	res, err := svc.Quote(1, sessionID)
	require.NoError(t, err)

	assert.Equal(t, int64(100), res.Subtotal) // 10p x 10 units
	assert.Equal(t, int64(10), res.PromotionDiscount)
	assert.Equal(t, int64(5), res.PromoDiscount)
	assert.Equal(t, int64(500), res.DeliveryFee)
	assert.Equal(t, int64(100+500), res.PreDiscountTotal)
	assert.Equal(t, int64(100-10-5+500), res.Total)
	assert.False(t, res.DeliveryFeeTBC)

	var session entity.MealSession
	require.NoError(t, db.First(&session, sessionID).Error)
	assert.Equal(t, entity.PricingPriced, session.PricingState)
}

func TestQuoteNilDistanceIsTBC(t *testing.T) {
	db := openTestDB(t)
	svc, sessionID, _ := seedQuoteFixture(t, db, nil)

	res, err := svc.Quote(1, sessionID)
	require.NoError(t, err)

	assert.True(t, res.DeliveryFeeTBC)
	assert.Zero(t, res.DeliveryFee)
	// fee excluded from both figures until the distance resolves
	assert.Equal(t, int64(100), res.PreDiscountTotal)
	assert.Equal(t, int64(100), res.Total)
	require.Len(t, res.Breakdown, 1)
	assert.True(t, res.Breakdown[0].TBC)
}

func TestQuoteFarDistanceNeedsCustomQuote(t *testing.T) {
	db := openTestDB(t)
	far := 12.5
	svc, sessionID, _ := seedQuoteFixture(t, db, &far)

	res, err := svc.Quote(1, sessionID)
	require.NoError(t, err)

	assert.True(t, res.RequiresCustomQuote)
	// provisional top-band fee still shown
	assert.Equal(t, int64(1400), res.DeliveryFee)
}

// A percent code applied when the cart was small must follow the cart: after
// the subtotal grows tenfold, so does the discount on the next quote.
func TestQuotePercentPromoTracksCart(t *testing.T) {
	db := openTestDB(t)
	two := 2.0
	svc, sessionID, _ := seedQuoteFixture(t, db, &two)

	require.NoError(t, db.Create(&entity.Promotion{PromoCode: "SAVE10", PercentOff: 10}).Error)
	// applied while the subtotal was 100, so the snapshot reads 10
	require.NoError(t, db.Create(&entity.SessionPromo{
		SessionID: sessionID, Code: "SAVE10", Discount: 10, Position: 1,
	}).Error)

	// cart grows to 1000 after the code went on
	require.NoError(t, db.Model(&entity.SessionItem{}).
		Where("session_id = ?", sessionID).Update("qty", 100).Error)

	res, err := svc.Quote(1, sessionID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), res.Subtotal)
	assert.Equal(t, int64(100), res.PromoDiscount)
	assert.Equal(t, int64(900+500), res.Total)
}

// Fixed-amount codes keep their apply-time value no matter how the cart moves.
func TestQuoteFixedAmountPromoKeepsSnapshot(t *testing.T) {
	db := openTestDB(t)
	svc, sessionID, _ := seedQuoteFixture(t, db, nil)

	require.NoError(t, db.Create(&entity.Promotion{PromoCode: "FIVEOFF", AmountOff: 5}).Error)
	require.NoError(t, db.Create(&entity.SessionPromo{
		SessionID: sessionID, Code: "FIVEOFF", Discount: 5, Position: 1,
	}).Error)

	require.NoError(t, db.Model(&entity.SessionItem{}).
		Where("session_id = ?", sessionID).Update("qty", 100).Error)

	res, err := svc.Quote(1, sessionID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), res.Subtotal)
	assert.Equal(t, int64(5), res.PromoDiscount)
}

func TestQuoteWrongUserNotFound(t *testing.T) {
	db := openTestDB(t)
	svc, sessionID, _ := seedQuoteFixture(t, db, nil)

	_, err := svc.Quote(99, sessionID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
