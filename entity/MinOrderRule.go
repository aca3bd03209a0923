package entity

import (
	"strings"

	"gorm.io/gorm"
)

// MinOrderRule sets a quantity floor over one or more menu sections.
// Required rules always apply to a restaurant with any order; optional rules
// only fire once the customer has items in one of the governed sections.
type MinOrderRule struct {
	gorm.Model
	RestaurantID uint       `json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	Sections    string `json:"sections"` // comma-separated section names
	MinQuantity int    `json:"minQuantity"`
	Required    bool   `json:"required"`
}

func (r *MinOrderRule) SectionList() []string {
	parts := strings.Split(r.Sections, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
