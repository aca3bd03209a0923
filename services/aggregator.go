package services

import (
	"fmt"

	"swiftcater/entity"
)

// SelectedAddon mirrors a stored addon selection. Qty is per serving-unit.
type SelectedAddon struct {
	AddonID    uint   `json:"addonId"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	Qty        int    `json:"qty"`
	GroupTitle string `json:"groupTitle"`
}

// SelectedItem is the aggregator's input row: menu item facts plus the
// customer's quantity and addon picks. Built from session state, never
// persisted.
type SelectedItem struct {
	MenuItemID     uint
	Name           string
	RestaurantID   uint
	RestaurantName string
	Price          int64
	DiscountPrice  int64
	IsDiscount     bool
	GroupTitle     string
	FeedsPerUnit   int
	Qty            int
	Addons         []SelectedAddon
}

// OrderLine is a computed line inside a restaurant grouping.
type OrderLine struct {
	MenuItemID uint            `json:"menuItemId"`
	Name       string          `json:"name"`
	GroupTitle string          `json:"groupTitle"`
	Qty        int             `json:"qty"`
	UnitPrice  int64           `json:"unitPrice"`
	AddonPrice int64           `json:"addonPrice"`
	Total      int64           `json:"total"`
	Addons     []SelectedAddon `json:"addons"`
}

// GroupedRestaurantOrder is derived on every pricing pass and lives for one
// calculation only.
type GroupedRestaurantOrder struct {
	RestaurantID   uint        `json:"restaurantId"`
	RestaurantName string      `json:"restaurantName"`
	Items          []OrderLine `json:"items"`
	Subtotal       int64       `json:"subtotal"`
}

// ErrNoRestaurant: an item without a restaurant association is a data bug;
// grouping it under a catch-all would silently skew per-restaurant totals.
var ErrNoRestaurant = fmt.Errorf("menu item has no restaurant association")

func unitPrice(it SelectedItem) int64 {
	if it.IsDiscount && it.DiscountPrice > 0 {
		return it.DiscountPrice
	}
	return it.Price
}

// Addon qty is given per serving-unit while the line is priced per order, so
// the addon sum scales by the item's feeds-per-unit.
func addonPricePerLine(it SelectedItem) int64 {
	feeds := it.FeedsPerUnit
	if feeds <= 0 {
		feeds = entity.DefaultFeedsPerUnit
	}
	var sum int64
	for _, a := range it.Addons {
		sum += a.Price * int64(a.Qty)
	}
	return sum * int64(feeds)
}

// GroupByRestaurant folds selected items into per-restaurant groupings,
// preserving first-seen restaurant order and item order. Pure: identical
// input always yields identical output.
func GroupByRestaurant(items []SelectedItem) ([]GroupedRestaurantOrder, error) {
	groups := make([]GroupedRestaurantOrder, 0, 4)
	index := make(map[uint]int, 4)

	for _, it := range items {
		if it.RestaurantID == 0 {
			return nil, fmt.Errorf("%w: menu item %d", ErrNoRestaurant, it.MenuItemID)
		}

		unit := unitPrice(it)
		addonPrice := addonPricePerLine(it)
		line := OrderLine{
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			GroupTitle: it.GroupTitle,
			Qty:        it.Qty,
			UnitPrice:  unit,
			AddonPrice: addonPrice,
			Total:      unit*int64(it.Qty) + addonPrice,
			Addons:     it.Addons,
		}

		i, ok := index[it.RestaurantID]
		if !ok {
			i = len(groups)
			index[it.RestaurantID] = i
			groups = append(groups, GroupedRestaurantOrder{
				RestaurantID:   it.RestaurantID,
				RestaurantName: it.RestaurantName,
			})
		}
		groups[i].Items = append(groups[i].Items, line)
		groups[i].Subtotal += line.Total
	}

	return groups, nil
}

// SubtotalOf sums line totals across groupings.
func SubtotalOf(groups []GroupedRestaurantOrder) int64 {
	var sum int64
	for _, g := range groups {
		sum += g.Subtotal
	}
	return sum
}
