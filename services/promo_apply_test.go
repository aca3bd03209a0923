package services

import (
	"testing"

	"swiftcater/entity"
	"swiftcater/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promoServiceFixture(t *testing.T) (*PromoService, uint) {
	t.Helper()
	db := openTestDB(t)
	_, sessionID, _ := seedQuoteFixture(t, db, nil)

	require.NoError(t, db.Create(&entity.Promotion{
		PromoCode: "SAVE10", PercentOff: 10, MinOrder: 50,
	}).Error)

	return NewPromoService(db, repository.NewPromotionRepository(db), repository.NewSessionRepository(db)), sessionID
}

func TestApplyPromoCaseInsensitiveDuplicate(t *testing.T) {
	svc, sessionID := promoServiceFixture(t)

	res, err := svc.Apply(1, sessionID, "save10")
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, "SAVE10", res.Code)
	assert.Equal(t, int64(10), res.Discount) // 10% of the 100p subtotal

	// case-different retry is a duplicate, rejected before lookup
	res, err = svc.Apply(1, sessionID, "SAVE10")
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, ErrPromoAlreadyApplied.Error(), res.Reason)

	promos, err := svc.SessionRepo.Promos(sessionID)
	require.NoError(t, err)
	require.Len(t, promos, 1)
	assert.Equal(t, "SAVE10", promos[0].Code)
}

func TestApplyPromoUnknownCode(t *testing.T) {
	svc, sessionID := promoServiceFixture(t)

	res, err := svc.Apply(1, sessionID, "NOPE")
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, ErrPromoNotFound.Error(), res.Reason)
}

func TestApplyPromoBelowMinOrder(t *testing.T) {
	svc, sessionID := promoServiceFixture(t)

	require.NoError(t, svc.DB.Create(&entity.Promotion{
		PromoCode: "BIGSPEND", AmountOff: 50, MinOrder: 5000,
	}).Error)

	res, err := svc.Apply(1, sessionID, "BIGSPEND")
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, ErrPromoMinOrder.Error(), res.Reason)
}

func TestRemovePromo(t *testing.T) {
	svc, sessionID := promoServiceFixture(t)

	_, err := svc.Apply(1, sessionID, "SAVE10")
	require.NoError(t, err)

	require.NoError(t, svc.Remove(1, sessionID, "save10"))

	err = svc.Remove(1, sessionID, "SAVE10")
	assert.ErrorIs(t, err, ErrPromoNotApplied)
}

func TestApplyPromoInsertionOrder(t *testing.T) {
	svc, sessionID := promoServiceFixture(t)

	require.NoError(t, svc.DB.Create(&entity.Promotion{PromoCode: "FIVEOFF", AmountOff: 5}).Error)

	_, err := svc.Apply(1, sessionID, "SAVE10")
	require.NoError(t, err)
	_, err = svc.Apply(1, sessionID, "fiveoff")
	require.NoError(t, err)

	promos, err := svc.SessionRepo.Promos(sessionID)
	require.NoError(t, err)
	require.Len(t, promos, 2)
	assert.Equal(t, []string{"SAVE10", "FIVEOFF"}, []string{promos[0].Code, promos[1].Code})
	assert.Less(t, promos[0].Position, promos[1].Position)
}
