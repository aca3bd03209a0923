package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemFixture() SelectedItem {
	return SelectedItem{
		MenuItemID:     1,
		Name:           "Chicken Satay Platter",
		RestaurantID:   7,
		RestaurantName: "Bangkok Kitchen",
		Price:          1200,
		FeedsPerUnit:   10,
		Qty:            20,
	}
}

func TestGroupByRestaurantLineMath(t *testing.T) {
	it := itemFixture()
	it.Addons = []SelectedAddon{
		{AddonID: 1, Name: "Peanut Sauce", Price: 50, Qty: 2},
		{AddonID: 2, Name: "Extra Skewers", Price: 100, Qty: 1},
	}

	groups, err := GroupByRestaurant([]SelectedItem{it})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Items, 1)

	line := groups[0].Items[0]
	// addons: (50*2 + 100*1) * feeds 10 = 2000
	assert.Equal(t, int64(2000), line.AddonPrice)
	// 1200*20 + 2000
	assert.Equal(t, int64(26000), line.Total)
	assert.Equal(t, int64(26000), groups[0].Subtotal)
}

func TestGroupByRestaurantDiscountPrice(t *testing.T) {
	it := itemFixture()
	it.DiscountPrice = 900
	it.IsDiscount = true

	groups, err := GroupByRestaurant([]SelectedItem{it})
	require.NoError(t, err)
	assert.Equal(t, int64(900), groups[0].Items[0].UnitPrice)

	// discount flag set but no price recorded: full price applies
	it.DiscountPrice = 0
	groups, err = GroupByRestaurant([]SelectedItem{it})
	require.NoError(t, err)
	assert.Equal(t, int64(1200), groups[0].Items[0].UnitPrice)
}

func TestGroupByRestaurantDefaultFeeds(t *testing.T) {
	it := itemFixture()
	it.FeedsPerUnit = 0
	it.Addons = []SelectedAddon{{AddonID: 1, Price: 30, Qty: 1}}

	groups, err := GroupByRestaurant([]SelectedItem{it})
	require.NoError(t, err)
	// zero feeds falls back to 10
	assert.Equal(t, int64(300), groups[0].Items[0].AddonPrice)
}

func TestGroupByRestaurantFirstSeenOrder(t *testing.T) {
	a := itemFixture()
	b := itemFixture()
	b.MenuItemID = 2
	b.RestaurantID = 9
	b.RestaurantName = "Roma Catering"
	c := itemFixture()
	c.MenuItemID = 3

	groups, err := GroupByRestaurant([]SelectedItem{a, b, c})
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, uint(7), groups[0].RestaurantID)
	assert.Equal(t, uint(9), groups[1].RestaurantID)
	assert.Len(t, groups[0].Items, 2)
	assert.Len(t, groups[1].Items, 1)

	// same input, same output
	again, err := GroupByRestaurant([]SelectedItem{a, b, c})
	require.NoError(t, err)
	assert.Equal(t, groups, again)
}

func TestGroupByRestaurantNoRestaurant(t *testing.T) {
	it := itemFixture()
	it.RestaurantID = 0

	_, err := GroupByRestaurant([]SelectedItem{it})
	require.ErrorIs(t, err, ErrNoRestaurant)
}

func TestSubtotalOf(t *testing.T) {
	a := itemFixture()
	b := itemFixture()
	b.MenuItemID = 2
	b.RestaurantID = 9
	b.Qty = 10

	groups, err := GroupByRestaurant([]SelectedItem{a, b})
	require.NoError(t, err)
	assert.Equal(t, int64(1200*20+1200*10), SubtotalOf(groups))
}
