package services

import (
	"fmt"
	"strings"

	"swiftcater/entity"
)

// Section fallback when a menu item has no group title.
const fallbackSection = "Other"

// SectionQuantity is one validation result row. A section can appear more
// than once when overlapping rules both name it; each rule's row must hold.
type SectionQuantity struct {
	Section         string `json:"section"`
	CurrentQuantity int    `json:"currentQuantity"`
	MinQuantity     int    `json:"minQuantity"`
	IsMet           bool   `json:"isMet"`
	IsRequired      bool   `json:"isRequired"`
}

type RestaurantMinOrderStatus struct {
	RestaurantID   uint              `json:"restaurantId"`
	RestaurantName string            `json:"restaurantName"`
	IsValid        bool              `json:"isValid"`
	Sections       []SectionQuantity `json:"sections"`
}

// SectionQuantities sums quantities for one restaurant keyed by group title,
// with the literal "Other" fallback for untitled items.
func SectionQuantities(items []SelectedItem, restaurantID uint) map[string]int {
	out := make(map[string]int)
	for _, it := range items {
		if it.RestaurantID != restaurantID {
			continue
		}
		section := it.GroupTitle
		if section == "" {
			section = fallbackSection
		}
		out[section] += it.Qty
	}
	return out
}

// ValidateRestaurantMinOrders evaluates a restaurant's rules against the
// session's items from that restaurant.
//
// No rules, or no items from the restaurant, is vacuously valid. Required
// rules always record a row per applicable section (even at quantity 0);
// optional rules only fire for sections the customer has opted into.
func ValidateRestaurantMinOrders(items []SelectedItem, restaurantID uint, restaurantName string, rules []entity.MinOrderRule) RestaurantMinOrderStatus {
	status := RestaurantMinOrderStatus{
		RestaurantID:   restaurantID,
		RestaurantName: restaurantName,
		IsValid:        true,
		Sections:       []SectionQuantity{},
	}

	quantities := SectionQuantities(items, restaurantID)
	if len(rules) == 0 || len(quantities) == 0 {
		return status
	}

	for _, rule := range rules {
		for _, section := range rule.SectionList() {
			cur := quantities[section]
			if !rule.Required && cur == 0 {
				continue
			}
			row := SectionQuantity{
				Section:         section,
				CurrentQuantity: cur,
				MinQuantity:     rule.MinQuantity,
				IsMet:           cur >= rule.MinQuantity,
				IsRequired:      rule.Required,
			}
			status.Sections = append(status.Sections, row)
			if !row.IsMet {
				status.IsValid = false
			}
		}
	}

	return status
}

// ValidateSessionMinOrders runs the validator for every restaurant present in
// the items, in first-seen order. Restaurants without items are not
// considered at all.
func ValidateSessionMinOrders(items []SelectedItem, rulesFor func(restaurantID uint) ([]entity.MinOrderRule, error)) ([]RestaurantMinOrderStatus, bool, error) {
	seen := make(map[uint]bool)
	var statuses []RestaurantMinOrderStatus
	valid := true

	for _, it := range items {
		if it.RestaurantID == 0 || seen[it.RestaurantID] {
			continue
		}
		seen[it.RestaurantID] = true

		rules, err := rulesFor(it.RestaurantID)
		if err != nil {
			return nil, false, err
		}
		st := ValidateRestaurantMinOrders(items, it.RestaurantID, it.RestaurantName, rules)
		statuses = append(statuses, st)
		if !st.IsValid {
			valid = false
		}
	}

	return statuses, valid, nil
}

// UnmetMessage renders the user-facing summary of unmet rows, e.g.
// "Mains: Required 20, currently 15 (need 5 more) • Sides: Minimum 10, currently 5 (need 5 more)"
func UnmetMessage(status RestaurantMinOrderStatus) string {
	var parts []string
	for _, row := range status.Sections {
		if row.IsMet {
			continue
		}
		label := "Minimum"
		if row.IsRequired {
			label = "Required"
		}
		parts = append(parts, fmt.Sprintf("%s: %s %d, currently %d (need %d more)",
			row.Section, label, row.MinQuantity, row.CurrentQuantity, row.MinQuantity-row.CurrentQuantity))
	}
	return strings.Join(parts, " • ")
}
