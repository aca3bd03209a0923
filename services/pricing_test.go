package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliveryFeeForDistance(t *testing.T) {
	cases := []struct {
		miles  float64
		fee    int64
		custom bool
	}{
		{0.5, 500, false},
		{3, 500, false},
		{3.1, 900, false},
		{6, 900, false},
		{6.5, 1400, false},
		{10, 1400, false},
		{10.1, 1400, true},
		{25, 1400, true},
	}

	for _, tc := range cases {
		fee, custom := DeliveryFeeForDistance(tc.miles)
		assert.Equal(t, tc.fee, fee, "miles=%v", tc.miles)
		assert.Equal(t, tc.custom, custom, "miles=%v", tc.miles)
	}
}

func TestEstimate(t *testing.T) {
	items := []SelectedItem{
		{MenuItemID: 1, RestaurantID: 7, Price: 1000, FeedsPerUnit: 10, Qty: 10},
		{MenuItemID: 2, RestaurantID: 9, Price: 500, FeedsPerUnit: 10, Qty: 20,
			Addons: []SelectedAddon{{AddonID: 1, Price: 10, Qty: 1}}},
	}

	got, err := Estimate(items)
	require.NoError(t, err)
	// 1000*10 + (500*20 + 10*1*10)
	assert.Equal(t, int64(10000+10100), got)
}

func TestEstimatePropagatesGroupingError(t *testing.T) {
	_, err := Estimate([]SelectedItem{{MenuItemID: 1, Qty: 10}})
	require.ErrorIs(t, err, ErrNoRestaurant)
}
