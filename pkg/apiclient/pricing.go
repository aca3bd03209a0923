package apiclient

import (
	"context"
	"fmt"
	"net/http"
)

type QuoteLine struct {
	MenuItemID uint   `json:"menuItemId"`
	Name       string `json:"name"`
	Qty        int    `json:"qty"`
	UnitPrice  int64  `json:"unitPrice"`
	AddonPrice int64  `json:"addonPrice"`
	Total      int64  `json:"total"`
}

type QuoteGroup struct {
	RestaurantID   uint        `json:"restaurantId"`
	RestaurantName string      `json:"restaurantName"`
	Lines          []QuoteLine `json:"lines"`
	Subtotal       int64       `json:"subtotal"`
}

type Quote struct {
	Subtotal            int64        `json:"subtotal"`
	PromotionDiscount   int64        `json:"promotionDiscount"`
	PromoDiscount       int64        `json:"promoDiscount"`
	DeliveryFee         int64        `json:"deliveryFee"`
	DeliveryFeeTBC      bool         `json:"deliveryFeeTBC"`
	Total               int64        `json:"total"`
	PreDiscountTotal    int64        `json:"preDiscountTotal"`
	RequiresCustomQuote bool         `json:"requiresCustomQuote"`
	DistanceMiles       *float64     `json:"distanceMiles"`
	PricePerHead        string       `json:"pricePerHead"`
	Groups              []QuoteGroup `json:"groups"`
}

// GetQuote runs the authoritative pricing pass for a session.
func (c *Client) GetQuote(ctx context.Context, sessionID uint) (*Quote, error) {
	var out Quote
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/sessions/%d/quote", sessionID), nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
