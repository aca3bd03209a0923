package services

import (
	"testing"

	"swiftcater/entity"
	"swiftcater/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func sessionMutationFixture(t *testing.T) (*SessionService, *gorm.DB, uint, *entity.MenuItem) {
	t.Helper()
	db := openTestDB(t)
	_, sessionID, restID := seedQuoteFixture(t, db, nil)

	var item entity.MenuItem
	require.NoError(t, db.Where("restaurant_id = ?", restID).First(&item).Error)

	svc := NewSessionService(db, repository.NewSessionRepository(db), repository.NewMenuRepository(db))
	return svc, db, sessionID, &item
}

// qty per menu item, the shape mutations get compared on
func itemSet(t *testing.T, db *gorm.DB, sessionID uint) map[uint]int {
	t.Helper()
	var rows []entity.SessionItem
	require.NoError(t, db.Where("session_id = ?", sessionID).Find(&rows).Error)
	out := make(map[uint]int, len(rows))
	for _, r := range rows {
		out[r.MenuItemID] = r.Qty
	}
	return out
}

func sessionLine(t *testing.T, db *gorm.DB, sessionID, menuItemID uint) *entity.SessionItem {
	t.Helper()
	var row entity.SessionItem
	require.NoError(t, db.Where("session_id = ? AND menu_item_id = ?", sessionID, menuItemID).
		First(&row).Error)
	return &row
}

// Adding an item and later removing it leaves the cart exactly as it was,
// even when its quantity changed in between.
func TestAddThenRemoveRestoresItemSet(t *testing.T) {
	svc, db, sessionID, item := sessionMutationFixture(t)

	second := entity.MenuItem{
		Name: "Veg Platter", Price: 20, FeedsPerUnit: 10,
		GroupTitle: "Sides", RestaurantID: item.RestaurantID,
	}
	require.NoError(t, db.Create(&second).Error)

	before := itemSet(t, db, sessionID)

	require.NoError(t, svc.AddItem(1, sessionID, &AddItemIn{MenuItemID: second.ID, Qty: 10}))
	line := sessionLine(t, db, sessionID, second.ID)
	require.NoError(t, svc.UpdateQty(1, sessionID, line.ID, 27))
	require.NoError(t, svc.RemoveItem(1, sessionID, line.ID))

	assert.Equal(t, before, itemSet(t, db, sessionID))
}

// Adding a menu item already in the cart grows the existing line instead of
// creating a second one.
func TestAddExistingItemMergesLine(t *testing.T) {
	svc, db, sessionID, item := sessionMutationFixture(t)

	require.NoError(t, svc.AddItem(1, sessionID, &AddItemIn{MenuItemID: item.ID, Qty: 10}))

	var count int64
	require.NoError(t, db.Model(&entity.SessionItem{}).
		Where("session_id = ? AND menu_item_id = ?", sessionID, item.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, 20, sessionLine(t, db, sessionID, item.ID).Qty)
}

func TestUpdateQtyZeroRemovesLine(t *testing.T) {
	svc, db, sessionID, item := sessionMutationFixture(t)
	line := sessionLine(t, db, sessionID, item.ID)

	require.NoError(t, svc.UpdateQty(1, sessionID, line.ID, 0))

	var count int64
	require.NoError(t, db.Model(&entity.SessionItem{}).
		Where("id = ?", line.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateQtySnapsToUnits(t *testing.T) {
	svc, db, sessionID, item := sessionMutationFixture(t)
	line := sessionLine(t, db, sessionID, item.ID)

	require.NoError(t, svc.UpdateQty(1, sessionID, line.ID, 27))
	assert.Equal(t, 30, sessionLine(t, db, sessionID, item.ID).Qty)
}

// An addon belonging to another menu item never attaches.
func TestAddItemRejectsForeignAddon(t *testing.T) {
	svc, db, sessionID, item := sessionMutationFixture(t)

	other := entity.MenuItem{
		Name: "Pad Thai Tray", Price: 15, FeedsPerUnit: 10,
		GroupTitle: "Mains", RestaurantID: item.RestaurantID,
	}
	require.NoError(t, db.Create(&other).Error)
	foreign := entity.Addon{Name: "Peanut Sauce", Price: 2, MenuItemID: other.ID}
	require.NoError(t, db.Create(&foreign).Error)

	err := svc.AddItem(1, sessionID, &AddItemIn{
		MenuItemID: item.ID, Qty: 10,
		Addons: []AddonSelectionIn{{AddonID: foreign.ID, Qty: 1}},
	})
	assert.ErrorIs(t, err, ErrAddonNotOnItem)

	// nothing changed
	assert.Equal(t, 10, sessionLine(t, db, sessionID, item.ID).Qty)
}

// Every cart mutation drops the session back into calculating; clearing
// returns it to idle.
func TestMutationsResetPricingState(t *testing.T) {
	svc, db, sessionID, item := sessionMutationFixture(t)

	require.NoError(t, db.Model(&entity.MealSession{}).Where("id = ?", sessionID).
		Update("pricing_state", entity.PricingPriced).Error)

	require.NoError(t, svc.AddItem(1, sessionID, &AddItemIn{MenuItemID: item.ID, Qty: 10}))

	var session entity.MealSession
	require.NoError(t, db.First(&session, sessionID).Error)
	assert.Equal(t, entity.PricingCalculating, session.PricingState)

	require.NoError(t, svc.Clear(1, sessionID))
	require.NoError(t, db.First(&session, sessionID).Error)
	assert.Equal(t, entity.PricingIdle, session.PricingState)
}

// A qty update aimed at a line that does not exist must not report success.
func TestUpdateQtyUnknownItemNotFound(t *testing.T) {
	svc, _, sessionID, _ := sessionMutationFixture(t)

	err := svc.UpdateQty(1, sessionID, 9999, 20)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// Another user's line is invisible: the ownership guard turns the update
// into a not-found, not a silent no-op.
func TestUpdateQtyOtherUsersItemNotFound(t *testing.T) {
	svc, db, sessionID, item := sessionMutationFixture(t)
	line := sessionLine(t, db, sessionID, item.ID)

	err := svc.UpdateQty(99, sessionID, line.ID, 20)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	// untouched
	assert.Equal(t, 10, sessionLine(t, db, sessionID, item.ID).Qty)
}

func TestRemoveUnknownItemNotFound(t *testing.T) {
	svc, _, sessionID, _ := sessionMutationFixture(t)

	err := svc.RemoveItem(1, sessionID, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
